package content

import "github.com/dshills/tacsim/pkg/facade"

// Registry bundles every facade implementation this package ships, wired
// once at process start and treated as immutable thereafter: a
// lazily-initialized, read-only content registry populated by a single
// bootstrap call.
type Registry struct {
	Skills   facade.SkillRegistry
	Tiles    facade.TileKindFacade
	Combat   facade.CombatProfileFacade
	AI       facade.AIFacade
	Upgrades facade.UpgradeFacade
	Status   facade.StatusHookFacade
}

// Bootstrap constructs the reference Registry.
func Bootstrap() *Registry {
	return &Registry{
		Skills:   NewSkillRegistry(),
		Tiles:    NewTileKindRegistry(),
		Combat:   CombatProfile{},
		AI:       ToyAI{},
		Upgrades: UpgradeCatalog{},
		Status:   StatusHooks{},
	}
}
