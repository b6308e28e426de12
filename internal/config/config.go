package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/orbital-network/auction/internal/core/application"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	"github.com/orbital-network/auction/internal/infrastructure/db"
	inmemorylivestore "github.com/orbital-network/auction/internal/infrastructure/live-store/inmemory"
	redislivestore "github.com/orbital-network/auction/internal/infrastructure/live-store/redis"
	"github.com/orbital-network/auction/internal/infrastructure/metrics"
	nostrnotifier "github.com/orbital-network/auction/internal/infrastructure/notifier/nostr"
	watermillnotifier "github.com/orbital-network/auction/internal/infrastructure/notifier/watermill"
	timescheduler "github.com/orbital-network/auction/internal/infrastructure/scheduler/gocron"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	supportedDbs = supportedType{
		"badger": {},
		"sqlite": {},
	}
	supportedLiveStores = supportedType{
		"inmemory": {},
		"redis":    {},
	}
	supportedNotifiers = supportedType{
		"watermill": {},
		"nostr":     {},
	}
	supportedSchedulers = supportedType{
		"gocron": {},
	}
)

type Config struct {
	Datadir  string
	Port     uint32
	LogLevel int

	DbType            string
	DbDir             string
	LiveStoreType     string
	RedisUrl          string
	RedisNumOfRetries int
	NotifierType      string
	NostrRecipient    string
	SchedulerType     string

	KeeperInterval    int64
	AllowTimeOverride bool
	Controller        string
	JWTSecret         string

	BatchSize             uint64
	AuctionDuration       int64
	FillingWindowDuration int64
	OfferDomain           string
	OfferDenom            string
	AskDomain             string
	AskDenom              string
	SolverBondDenom       string
	SolverBondAmount      uint64
	Domains               domain.DomainAccounts

	repo      ports.RepoManager
	svc       application.Service
	liveStore ports.LiveStore
	notifier  ports.Notifier
	scheduler ports.SchedulerService
	metrics   *metrics.Metrics
}

func (c *Config) String() string {
	clone := *c
	if len(clone.JWTSecret) > 0 {
		clone.JWTSecret = "••••••"
	}
	json, err := json.MarshalIndent(clone, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	Datadir               = "DATADIR"
	Port                  = "PORT"
	LogLevel              = "LOG_LEVEL"
	DbType                = "DB_TYPE"
	LiveStoreType         = "LIVE_STORE_TYPE"
	RedisUrl              = "REDIS_URL"
	RedisNumOfRetries     = "REDIS_NUM_OF_RETRIES"
	NotifierType          = "NOTIFIER_TYPE"
	NostrRecipient        = "NOSTR_RECIPIENT"
	SchedulerType         = "SCHEDULER_TYPE"
	KeeperInterval        = "KEEPER_INTERVAL"
	AllowTimeOverride     = "ALLOW_TIME_OVERRIDE"
	Controller            = "CONTROLLER"
	JWTSecret             = "JWT_SECRET"
	BatchSize             = "BATCH_SIZE"
	AuctionDuration       = "AUCTION_DURATION"
	FillingWindowDuration = "FILLING_WINDOW_DURATION"
	OfferDomain           = "OFFER_DOMAIN"
	OfferDenom            = "OFFER_DENOM"
	AskDomain             = "ASK_DOMAIN"
	AskDenom              = "ASK_DENOM"
	SolverBondDenom       = "SOLVER_BOND_DENOM"
	SolverBondAmount      = "SOLVER_BOND_AMOUNT"
	Domains               = "DOMAINS"

	defaultDatadir               = appDataDir("auctiond")
	DefaultPort                  = 7070
	defaultLogLevel              = 4
	defaultDbType                = "sqlite"
	defaultLiveStoreType         = "inmemory"
	defaultRedisUrl              = "redis://localhost:6379/0"
	defaultRedisNumOfRetries     = 10
	defaultNotifierType          = "watermill"
	defaultSchedulerType         = "gocron"
	defaultKeeperInterval        = 5
	defaultAllowTimeOverride     = false
	defaultBatchSize             = 1000
	defaultAuctionDuration       = 180
	defaultFillingWindowDuration = 60
)

func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("AUCTION")
	viper.AutomaticEnv()

	viper.SetDefault(Datadir, defaultDatadir)
	viper.SetDefault(Port, DefaultPort)
	viper.SetDefault(LogLevel, defaultLogLevel)
	viper.SetDefault(DbType, defaultDbType)
	viper.SetDefault(LiveStoreType, defaultLiveStoreType)
	viper.SetDefault(RedisUrl, defaultRedisUrl)
	viper.SetDefault(RedisNumOfRetries, defaultRedisNumOfRetries)
	viper.SetDefault(NotifierType, defaultNotifierType)
	viper.SetDefault(SchedulerType, defaultSchedulerType)
	viper.SetDefault(KeeperInterval, defaultKeeperInterval)
	viper.SetDefault(AllowTimeOverride, defaultAllowTimeOverride)
	viper.SetDefault(BatchSize, defaultBatchSize)
	viper.SetDefault(AuctionDuration, defaultAuctionDuration)
	viper.SetDefault(FillingWindowDuration, defaultFillingWindowDuration)

	if err := initDatadir(); err != nil {
		return nil, fmt.Errorf("error while creating datadir: %s", err)
	}

	var domains domain.DomainAccounts
	if raw := viper.GetString(Domains); len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw), &domains); err != nil {
			return nil, fmt.Errorf("invalid %s: %s", Domains, err)
		}
	}

	bondDenom := viper.GetString(SolverBondDenom)
	if len(bondDenom) <= 0 {
		bondDenom = viper.GetString(OfferDenom)
	}

	return &Config{
		Datadir:               viper.GetString(Datadir),
		Port:                  viper.GetUint32(Port),
		LogLevel:              viper.GetInt(LogLevel),
		DbType:                viper.GetString(DbType),
		DbDir:                 filepath.Join(viper.GetString(Datadir), "db"),
		LiveStoreType:         viper.GetString(LiveStoreType),
		RedisUrl:              viper.GetString(RedisUrl),
		RedisNumOfRetries:     viper.GetInt(RedisNumOfRetries),
		NotifierType:          viper.GetString(NotifierType),
		NostrRecipient:        viper.GetString(NostrRecipient),
		SchedulerType:         viper.GetString(SchedulerType),
		KeeperInterval:        viper.GetInt64(KeeperInterval),
		AllowTimeOverride:     viper.GetBool(AllowTimeOverride),
		Controller:            viper.GetString(Controller),
		JWTSecret:             viper.GetString(JWTSecret),
		BatchSize:             viper.GetUint64(BatchSize),
		AuctionDuration:       viper.GetInt64(AuctionDuration),
		FillingWindowDuration: viper.GetInt64(FillingWindowDuration),
		OfferDomain:           viper.GetString(OfferDomain),
		OfferDenom:            viper.GetString(OfferDenom),
		AskDomain:             viper.GetString(AskDomain),
		AskDenom:              viper.GetString(AskDenom),
		SolverBondDenom:       bondDenom,
		SolverBondAmount:      viper.GetUint64(SolverBondAmount),
		Domains:               domains,
	}, nil
}

func initDatadir() error {
	datadir := viper.GetString(Datadir)
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func appDataDir(appName string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// Validate checks the config and builds every service the daemon needs.
// It is safe to call more than once.
func (c *Config) Validate() error {
	if c.svc != nil {
		return nil
	}

	if !supportedDbs.supports(c.DbType) {
		return fmt.Errorf("db type not supported, please select one of: %s", supportedDbs)
	}
	if !supportedLiveStores.supports(c.LiveStoreType) {
		return fmt.Errorf("live store type not supported, please select one of: %s", supportedLiveStores)
	}
	if !supportedNotifiers.supports(c.NotifierType) {
		return fmt.Errorf("notifier type not supported, please select one of: %s", supportedNotifiers)
	}
	if !supportedSchedulers.supports(c.SchedulerType) {
		return fmt.Errorf("scheduler type not supported, please select one of: %s", supportedSchedulers)
	}
	if c.KeeperInterval < 0 {
		return fmt.Errorf("invalid keeper interval, must not be negative")
	}
	if len(c.Controller) <= 0 {
		return fmt.Errorf("missing controller identity")
	}
	if c.NotifierType == "nostr" && len(c.NostrRecipient) <= 0 {
		return fmt.Errorf("missing nostr recipient")
	}
	if _, err := c.auctionConfig(); err != nil {
		return err
	}

	if err := c.repoManager(); err != nil {
		return err
	}
	if err := c.liveStoreService(); err != nil {
		return err
	}
	if err := c.notifierService(); err != nil {
		return err
	}
	if err := c.schedulerService(); err != nil {
		return err
	}
	if err := c.metricsService(); err != nil {
		return err
	}
	return c.appService()
}

func (c *Config) AppService() (application.Service, error) {
	if c.svc == nil {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return c.svc, nil
}

func (c *Config) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *Config) auctionConfig() (*domain.AuctionConfig, error) {
	return domain.NewAuctionConfig(
		c.BatchSize,
		time.Duration(c.AuctionDuration)*time.Second,
		time.Duration(c.FillingWindowDuration)*time.Second,
		domain.Route{
			OfferDomain: c.OfferDomain,
			OfferDenom:  c.OfferDenom,
			AskDomain:   c.AskDomain,
			AskDenom:    c.AskDenom,
		},
		domain.Coin{Denom: c.SolverBondDenom, Amount: c.SolverBondAmount},
		c.Domains,
	)
}

func (c *Config) repoManager() error {
	var dataStoreConfig []interface{}
	logger := log.New()

	switch c.DbType {
	case "badger":
		dataStoreConfig = []interface{}{c.DbDir, logger}
	case "sqlite":
		dataStoreConfig = []interface{}{c.DbDir}
	default:
		return fmt.Errorf("unknown db type")
	}

	svc, err := db.NewService(db.ServiceConfig{
		EventStoreType:   "watermill",
		DataStoreType:    c.DbType,
		EventStoreConfig: []interface{}{nil},
		DataStoreConfig:  dataStoreConfig,
	})
	if err != nil {
		return err
	}

	c.repo = svc
	return nil
}

func (c *Config) liveStoreService() error {
	var liveStoreSvc ports.LiveStore
	var err error
	switch c.LiveStoreType {
	case "inmemory":
		liveStoreSvc = inmemorylivestore.NewLiveStore()
	case "redis":
		redisOpts, parseErr := redis.ParseURL(c.RedisUrl)
		if parseErr != nil {
			err = fmt.Errorf("invalid redis url: %s", parseErr)
			break
		}
		liveStoreSvc = redislivestore.NewLiveStore(redis.NewClient(redisOpts), c.RedisNumOfRetries)
	default:
		err = fmt.Errorf("unknown liveStore type")
	}
	if err != nil {
		return err
	}

	c.liveStore = liveStoreSvc
	return nil
}

func (c *Config) notifierService() error {
	var svc ports.Notifier
	var err error
	switch c.NotifierType {
	case "watermill":
		publisher := gochannel.NewGoChannel(
			gochannel.Config{}, watermill.NewStdLogger(false, false),
		)
		svc, err = watermillnotifier.New(publisher)
	case "nostr":
		svc, err = nostrnotifier.New(c.NostrRecipient)
	default:
		err = fmt.Errorf("unknown notifier type")
	}
	if err != nil {
		return err
	}

	c.notifier = svc
	return nil
}

func (c *Config) schedulerService() error {
	var svc ports.SchedulerService
	var err error
	switch c.SchedulerType {
	case "gocron":
		svc = timescheduler.NewScheduler()
	default:
		err = fmt.Errorf("unknown scheduler type")
	}
	if err != nil {
		return err
	}

	c.scheduler = svc
	return nil
}

func (c *Config) metricsService() error {
	if c.repo == nil {
		return fmt.Errorf("repo manager not set")
	}
	m := metrics.NewMetrics()
	m.RegisterEventHandlers(c.repo.Events())
	c.metrics = m
	return nil
}

func (c *Config) appService() error {
	auctionConfig, err := c.auctionConfig()
	if err != nil {
		return err
	}

	svc, err := application.NewService(
		application.Config{
			Controller:        c.Controller,
			AllowTimeOverride: c.AllowTimeOverride,
			KeeperInterval:    time.Duration(c.KeeperInterval) * time.Second,
		},
		*auctionConfig, c.repo, c.liveStore, c.notifier, c.scheduler,
	)
	if err != nil {
		return err
	}

	c.svc = svc
	return nil
}

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}

func (t supportedType) supports(typeStr string) bool {
	_, ok := t[typeStr]
	return ok
}
