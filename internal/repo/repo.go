package repo

import (
	"github.com/dftlabs/refengine/internal/pg"
	jobrepo "github.com/dftlabs/refengine/internal/repo/job-repo"
	ledgerrepo "github.com/dftlabs/refengine/internal/repo/ledger-repo"
	miningrepo "github.com/dftlabs/refengine/internal/repo/mining-repo"
	policyrepo "github.com/dftlabs/refengine/internal/repo/policy-repo"
	userrepo "github.com/dftlabs/refengine/internal/repo/user-repo"
)

type Repositories struct {
	Jobs     *jobrepo.Repository
	Users    *userrepo.Repository
	Policies *policyrepo.Repository
	Ledger   *ledgerrepo.Repository
	Mining   *miningrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		Jobs:     jobrepo.New(conn),
		Users:    userrepo.New(conn),
		Policies: policyrepo.New(conn),
		Ledger:   ledgerrepo.New(conn),
		Mining:   miningrepo.New(conn, txManager),
	}
}
