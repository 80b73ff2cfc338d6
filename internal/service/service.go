package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/dftlabs/refengine/internal/pg"
	"github.com/dftlabs/refengine/internal/repo"
	"github.com/dftlabs/refengine/internal/service/bonusservice"
	"github.com/dftlabs/refengine/internal/service/ledgerservice"
	"github.com/dftlabs/refengine/internal/service/levelservice"
	"github.com/dftlabs/refengine/internal/service/miningservice"
	"github.com/dftlabs/refengine/internal/service/queueservice"
	"github.com/dftlabs/refengine/internal/service/uplineservice"
)

type Services struct {
	Queue  *queueservice.Service
	Levels *levelservice.Service
	Upline *uplineservice.Service
	Ledger *ledgerservice.Service
	Bonus  *bonusservice.Service
	Mining *miningservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, clock clockwork.Clock) *Services {
	upline := uplineservice.New(repo.Users)
	ledger := ledgerservice.New(repo.Ledger, txManager)

	return &Services{
		Queue:  queueservice.New(repo.Jobs, clock),
		Levels: levelservice.New(repo.Users, repo.Policies),
		Upline: upline,
		Ledger: ledger,
		Bonus:  bonusservice.New(repo.Policies, upline, ledger),
		Mining: miningservice.New(repo.Mining, repo.Policies, upline, ledger),
	}
}
