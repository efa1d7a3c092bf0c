package app

import (
	"github.com/vk/kitresolve/internal/registry"
	"github.com/vk/kitresolve/modules/auto"
	"github.com/vk/kitresolve/modules/node"
	"github.com/vk/kitresolve/modules/static"
)

// coreModules is the definitive list of all adapters that are compiled into
// the kitresolve binary.
var coreModules = []registry.Module{
	&auto.Module{},
	&node.Module{},
	&static.Module{},
}
