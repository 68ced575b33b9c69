package app

import (
	"context"
	"log"

	authAPI "arcade_backend/internal/api/auth"
	gachaAPI "arcade_backend/internal/api/gacha"
	rouletteAPI "arcade_backend/internal/api/roulette"
	slotAPI "arcade_backend/internal/api/slot"
	walletAPI "arcade_backend/internal/api/wallet"
	"arcade_backend/internal/config"
	"arcade_backend/internal/config/env"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/repository/auth_repo"
	"arcade_backend/internal/repository/balance_mem_repo"
	"arcade_backend/internal/repository/state_repo"
	"arcade_backend/internal/repository/user_repo"
	"arcade_backend/internal/service"
	"arcade_backend/internal/service/auth"
	"arcade_backend/internal/service/gacha"
	"arcade_backend/internal/service/roulette"
	"arcade_backend/internal/service/segment"
	"arcade_backend/internal/service/slot"
	"arcade_backend/internal/service/wallet"
	"arcade_backend/pkg/keylock"
	"arcade_backend/pkg/notx"
	"arcade_backend/pkg/rng"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database. pgConfig == nil после проверки - режим без БД,
	// балансы живут в памяти процесса
	pgConfig  config.PGConfig
	pgChecked bool
	dbClient  *pgxpool.Pool

	// Redis. redisClient == nil после проверки - репозиторий состояния
	// работает на процесс-локальном фолбэке
	redisClient  *redis.Client
	redisChecked bool

	// Случайность и сериализация по пользователю, общие для всех движков
	locks *keylock.KeyedMutex
	rand  rng.Source

	// Configs
	gamesCfg config.GamesConfig
	jwtCfg   config.JWTConfig
	httpCfg  config.HTTPConfig

	// Repositories
	balanceRepo repository.BalanceRepository
	stateRepo   repository.StateRepository
	userRepo    repository.UserRepository
	authRepo    repository.AuthRepository

	// Segment policy
	policy *segment.Policy

	// Services
	slotServ     service.SlotService
	rouletteServ service.RouletteService
	gachaServ    service.GachaService
	walletServ   service.WalletService
	authServ     service.AuthService

	// Handlers
	slotHand     *slotAPI.Handler
	rouletteHand *rouletteAPI.Handler
	gachaHand    *gachaAPI.Handler
	walletHand   *walletAPI.Handler
	authHand     *authAPI.Handler

	// Router and HTTP config
	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

// PgConfig - nil, если PG_DSN не задан: это штатный режим без БД
func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if !sp.pgChecked {
		cfg, err := env.NewPGConfig()
		if err != nil {
			log.Printf("pg config unavailable, using in-memory balance storage: %v", err)
		}
		sp.pgConfig = cfg
		sp.pgChecked = true
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if sp.PgConfig() == nil {
			sp.txManager = notx.NewManager()
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

// RedisClient - nil, если REDIS_ADDR не задан: репозиторий состояния
// в этом случае использует только процесс-локальный фолбэк
func (sp *ServiceProvider) RedisClient() *redis.Client {
	if !sp.redisChecked {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			log.Printf("redis config unavailable, using in-process state fallback: %v", err)
		} else {
			sp.redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Addr(),
				Password: cfg.Password(),
				DB:       cfg.DB(),
			})
		}
		sp.redisChecked = true
	}
	return sp.redisClient
}

func (sp *ServiceProvider) Locks() *keylock.KeyedMutex {
	if sp.locks == nil {
		sp.locks = keylock.New()
	}
	return sp.locks
}

func (sp *ServiceProvider) Rand() rng.Source {
	if sp.rand == nil {
		sp.rand = rng.Default()
	}
	return sp.rand
}

// GamesCfg - игровая конфигурация из config.yaml.
// Ошибка разбора не фатальна: сервер стартует на дефолтах
func (sp *ServiceProvider) GamesCfg() config.GamesConfig {
	if sp.gamesCfg == nil {
		cfg, err := env.NewGamesConfigFromYAML("config.yaml")
		if err != nil {
			log.Printf("games config error, using defaults: %v", err)
		}
		sp.gamesCfg = cfg
	}
	return sp.gamesCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) BalanceRepo(ctx context.Context) repository.BalanceRepository {
	if sp.balanceRepo == nil {
		if sp.PgConfig() == nil {
			sp.balanceRepo = balance_mem_repo.NewBalanceRepository()
		} else {
			sp.balanceRepo = sp.UserRepo(ctx)
		}
	}
	return sp.balanceRepo
}

func (sp *ServiceProvider) StateRepo() repository.StateRepository {
	if sp.stateRepo == nil {
		sp.stateRepo = state_repo.NewStateRepository(sp.RedisClient())
	}
	return sp.stateRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) SegmentPolicy() *segment.Policy {
	if sp.policy == nil {
		sp.policy = segment.NewPolicy(sp.GamesCfg().Segments())
	}
	return sp.policy
}

func (sp *ServiceProvider) SlotService(ctx context.Context) service.SlotService {
	if sp.slotServ == nil {
		sp.slotServ = slot.NewSlotService(
			sp.GamesCfg().Slot(),
			sp.SegmentPolicy(),
			sp.BalanceRepo(ctx),
			sp.StateRepo(),
			sp.TXManager(ctx),
			sp.Locks(),
			sp.Rand(),
		)
	}
	return sp.slotServ
}

func (sp *ServiceProvider) RouletteService(ctx context.Context) service.RouletteService {
	if sp.rouletteServ == nil {
		sp.rouletteServ = roulette.NewRouletteService(
			sp.GamesCfg().Roulette(),
			sp.SegmentPolicy(),
			sp.BalanceRepo(ctx),
			sp.StateRepo(),
			sp.TXManager(ctx),
			sp.Locks(),
			sp.Rand(),
		)
	}
	return sp.rouletteServ
}

func (sp *ServiceProvider) GachaService(ctx context.Context) service.GachaService {
	if sp.gachaServ == nil {
		sp.gachaServ = gacha.NewGachaService(
			sp.GamesCfg().Gacha(),
			sp.BalanceRepo(ctx),
			sp.StateRepo(),
			sp.TXManager(ctx),
			sp.Locks(),
			sp.Rand(),
		)
	}
	return sp.gachaServ
}

func (sp *ServiceProvider) WalletService(ctx context.Context) service.WalletService {
	if sp.walletServ == nil {
		sp.walletServ = wallet.NewWalletService(
			sp.BalanceRepo(ctx),
			sp.StateRepo(),
			sp.Locks(),
		)
	}
	return sp.walletServ
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTCfg(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) SlotHandler(ctx context.Context) *slotAPI.Handler {
	if sp.slotHand == nil {
		sp.slotHand = slotAPI.NewHandler(slotAPI.HandlerDeps{Serv: sp.SlotService(ctx)})
	}
	return sp.slotHand
}

func (sp *ServiceProvider) RouletteHandler(ctx context.Context) *rouletteAPI.Handler {
	if sp.rouletteHand == nil {
		sp.rouletteHand = rouletteAPI.NewHandler(rouletteAPI.HandlerDeps{Serv: sp.RouletteService(ctx)})
	}
	return sp.rouletteHand
}

func (sp *ServiceProvider) GachaHandler(ctx context.Context) *gachaAPI.Handler {
	if sp.gachaHand == nil {
		sp.gachaHand = gachaAPI.NewHandler(gachaAPI.HandlerDeps{Serv: sp.GachaService(ctx)})
	}
	return sp.gachaHand
}

func (sp *ServiceProvider) WalletHandler(ctx context.Context) *walletAPI.Handler {
	if sp.walletHand == nil {
		sp.walletHand = walletAPI.NewHandler(walletAPI.HandlerDeps{Serv: sp.WalletService(ctx)})
	}
	return sp.walletHand
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints. Без БД регистрация и вход недоступны
		if sp.PgConfig() != nil {
			authHandler := sp.AuthHandler(ctx)
			r.Route("/auth", func(rr chi.Router) {
				rr.Post("/register", authHandler.Register)
				rr.Post("/login", authHandler.Login)
				rr.Post("/refresh", authHandler.Refresh)
				rr.Post("/logout", authHandler.Logout)
			})
		} else {
			log.Println("auth endpoints disabled: no database configured")
		}

		// Game and wallet endpoints, требуют access token
		slotHandler := sp.SlotHandler(ctx)
		rouletteHandler := sp.RouletteHandler(ctx)
		gachaHandler := sp.GachaHandler(ctx)
		walletHandler := sp.WalletHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg()))

			rr.Post("/slot/spin", slotHandler.Spin)
			rr.Post("/roulette/spin", rouletteHandler.Spin)
			rr.Post("/gacha/pull", gachaHandler.Pull)

			rr.Route("/wallet", func(rw chi.Router) {
				rw.Post("/deposit", walletHandler.Deposit)
				rw.Get("/balance", walletHandler.Balance)
			})
		})

		sp.router = r
	}

	return sp.router
}
