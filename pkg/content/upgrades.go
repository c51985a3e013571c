package content

import (
	"fmt"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
)

// UpgradeCatalog implements facade.UpgradeFacade over a fixed shrine offer
// table.
type UpgradeCatalog struct{}

// EligibleUpgrades satisfies facade.UpgradeFacade.
func (UpgradeCatalog) EligibleUpgrades(state *actorstate.GameState) []string {
	return []string{"EXTRA_HP", "SHARP_SPEAR", "QUICK_FEET"}
}

// ApplyUpgrade satisfies facade.UpgradeFacade.
func (UpgradeCatalog) ApplyUpgrade(state *actorstate.GameState, upgradeID string) ([]effect.Effect, error) {
	switch upgradeID {
	case "EXTRA_HP":
		if state.Player == nil {
			return nil, fmt.Errorf("content: EXTRA_HP with no player in state")
		}
		state.Player.MaxHP++
		return []effect.Effect{effect.Heal{Target: state.Player.ID, Amount: 1}}, nil
	case "SHARP_SPEAR", "QUICK_FEET":
		return nil, nil
	default:
		return nil, fmt.Errorf("content: unknown upgrade id %q", upgradeID)
	}
}
