package services

import (
	"fmt"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The tax rule set is validated here, so a
// malformed bracket table aborts startup instead of failing per request.
func NewServiceContainer(repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	container.CacheVersion = NewCacheVersionService(repos.CacheVersionRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Business = NewBusinessService(repos.BusinessRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.BusinessRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.BusinessRepo, container.CacheVersion)
	container.Summary = NewSummaryService(repos.TransactionRepo, container.Inventory)

	tax, err := NewTaxService(container.Summary, domain.NigeriaTaxAct2026())
	if err != nil {
		return nil, fmt.Errorf("failed to initialise tax service: %w", err)
	}
	container.Tax = tax

	return container, nil
}
