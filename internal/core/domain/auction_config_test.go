package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/stretchr/testify/require"
)

var (
	route = domain.Route{
		OfferDomain: "neutron",
		OfferDenom:  "untrn",
		AskDomain:   "osmosis",
		AskDenom:    "uosmo",
	}
	solverBond = domain.Coin{Denom: "untrn", Amount: 100}
	domains    = domain.DomainAccounts{
		domain.PolytoneAccount{
			Domain:       "neutron",
			NoteAddress:  "neutron1note",
			VoiceAddress: "neutron1voice",
			Timeout:      time.Minute,
		},
		domain.IcaAccount{
			Domain:       "osmosis",
			ConnectionId: "connection-0",
			ChannelId:    "channel-1",
			Timeout:      2 * time.Minute,
		},
	}
)

func TestAuctionConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := domain.NewAuctionConfig(1000, auctionPeriod, fillingWindow, route, solverBond, domains)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		cfg, err = domain.NewAuctionConfig(1000, auctionPeriod, 0, route, solverBond, nil)
		require.NoError(t, err)
		require.NotNil(t, cfg)
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name    string
			size    uint64
			period  time.Duration
			window  time.Duration
			route   domain.Route
			bond    domain.Coin
			domains domain.DomainAccounts
		}{
			{"zero batch size", 0, auctionPeriod, fillingWindow, route, solverBond, nil},
			{"short auction", 1000, time.Millisecond, fillingWindow, route, solverBond, nil},
			{"negative window", 1000, auctionPeriod, -time.Second, route, solverBond, nil},
			{"empty route", 1000, auctionPeriod, fillingWindow, domain.Route{}, solverBond, nil},
			{"missing bond denom", 1000, auctionPeriod, fillingWindow, route, domain.Coin{}, nil},
			{
				"uncovered domain", 1000, auctionPeriod, fillingWindow, route, solverBond,
				domains[:1],
			},
			{
				"bad account", 1000, auctionPeriod, fillingWindow, route, solverBond,
				domain.DomainAccounts{domains[0], domain.IcaAccount{Domain: "osmosis"}},
			},
		}

		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				cfg, err := domain.NewAuctionConfig(f.size, f.period, f.window, f.route, f.bond, f.domains)
				require.ErrorIs(t, err, domain.ErrInvalidConfig)
				require.Nil(t, cfg)
			})
		}
	})

	t.Run("differs", func(t *testing.T) {
		cfg, err := domain.NewAuctionConfig(1000, auctionPeriod, fillingWindow, route, solverBond, domains)
		require.NoError(t, err)

		other := *cfg
		other.UpdatedAt = 0
		require.False(t, cfg.Differs(other))

		other.BatchSize = 10
		require.True(t, cfg.Differs(other))
	})
}

func TestDomainAccountsJSON(t *testing.T) {
	buf, err := json.Marshal(domains)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"type":"polytone"`)
	require.Contains(t, string(buf), `"type":"ica"`)

	var decoded domain.DomainAccounts
	require.NoError(t, json.Unmarshal(buf, &decoded))
	require.Equal(t, domains, decoded)

	err = json.Unmarshal([]byte(`[{"type":"unknown","domain":"x"}]`), &decoded)
	require.Error(t, err)
}
