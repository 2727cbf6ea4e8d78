package app

import (
	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/modules/film"
	"github.com/vk/framegridgo/modules/frames"
	"github.com/vk/framegridgo/modules/glitch"
	"github.com/vk/framegridgo/modules/grade"
	"github.com/vk/framegridgo/modules/loaders"
	"github.com/vk/framegridgo/modules/masks"
	"github.com/vk/framegridgo/modules/optics"
	"github.com/vk/framegridgo/modules/typography"
	"github.com/vk/framegridgo/modules/utility"
	"github.com/vk/framegridgo/modules/wavelet"
)

// coreModules is the definitive list of all node modules that are compiled
// into the framegrid binary.
var coreModules = []registry.Module{
	&wavelet.Module{},
	&frames.Module{},
	&film.Module{},
	&optics.Module{},
	&grade.Module{},
	&glitch.Module{},
	&masks.Module{},
	&typography.Module{},
	&loaders.Module{},
	&utility.Module{},
}
