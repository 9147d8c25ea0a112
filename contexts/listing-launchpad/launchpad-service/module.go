package launchpadservice

import (
	"log/slog"
	"time"

	httpadapter "launchpad/contexts/listing-launchpad/launchpad-service/adapters/http"
	"launchpad/contexts/listing-launchpad/launchpad-service/adapters/memory"
	"launchpad/contexts/listing-launchpad/launchpad-service/application"
	"launchpad/contexts/listing-launchpad/launchpad-service/application/commands"
	"launchpad/contexts/listing-launchpad/launchpad-service/application/queries"
	"launchpad/contexts/listing-launchpad/launchpad-service/application/workers"
	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	"launchpad/contexts/listing-launchpad/launchpad-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Proposals *commands.ProposalUseCase
	Tickers   *workers.TickerSupervisor
	Store     *memory.Store
}

type Dependencies struct {
	Repo         ports.ProposalRepository
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Broadcaster  ports.EventBroadcaster
	Relay        ports.NotificationRelay
	TickInterval time.Duration
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	proposalUseCase := &commands.ProposalUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Locks:       application.NewProposalLocks(),
		Broadcaster: deps.Broadcaster,
		Relay:       deps.Relay,
		Logger:      deps.Logger,
	}
	supervisor := workers.NewTickerSupervisor(
		deps.Broadcaster,
		proposalUseCase,
		deps.Repo,
		deps.Clock,
		deps.TickInterval,
		deps.Logger,
	)
	proposalUseCase.Tickers = supervisor
	statusUseCase := queries.StatusUseCase{
		Repo:  deps.Repo,
		Clock: deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Proposals: proposalUseCase,
			Status:    statusUseCase,
			Logger:    deps.Logger,
		},
		Proposals: proposalUseCase,
		Tickers:   supervisor,
	}
}

func NewInMemoryModule(
	seed []entities.Proposal,
	broadcaster ports.EventBroadcaster,
	relay ports.NotificationRelay,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repo:         store,
		Clock:        store,
		IDGen:        store,
		Broadcaster:  broadcaster,
		Relay:        relay,
		TickInterval: workers.DefaultTickInterval,
		Logger:       logger,
	})
	module.Store = store
	return module
}
