package player

import (
	"fmt"
	"time"

	"github.com/ratel-online/landlord/config"
	"github.com/ratel-online/landlord/consts"
	"github.com/ratel-online/landlord/landlord/game"
)

func CreatePlayers(seats []config.PlayerConfig, timeout time.Duration) ([]string, []game.Strategy, error) {
	if len(seats) != consts.Seats {
		return nil, nil, consts.ErrorsSeatsInvalid
	}
	names := make([]string, 0, len(seats))
	strategies := make([]game.Strategy, 0, len(seats))
	for i, seat := range seats {
		strategy, err := createStrategy(seat, timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		names = append(names, seat.Name)
		strategies = append(strategies, strategy)
	}
	return names, strategies, nil
}

func createStrategy(seat config.PlayerConfig, timeout time.Duration) (game.Strategy, error) {
	switch seat.Provider {
	case config.ProviderRule, "":
		return NewRulePlayer(), nil
	case config.ProviderNaive:
		return NewNaivePlayer(), nil
	case config.ProviderLLM:
		return NewLLMPlayer(seat.Name, LLMConfig{
			APIKey:  seat.APIKey,
			BaseURL: seat.BaseURL,
			Model:   seat.Model,
			Timeout: timeout,
		}), nil
	}
	return nil, consts.ErrorsConfigInvalid
}
