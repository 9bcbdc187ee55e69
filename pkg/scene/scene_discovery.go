package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-interactive-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned by New for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type sceneFactory struct {
	info SceneInfo
	new  func(cameraOverrides ...geometry.CameraConfig) *Scene
}

var builtinScenes = map[string]sceneFactory{
	"default": {
		info: SceneInfo{Name: "default", Description: "Material showcase with a walking puppet under a gradient sky"},
		new:  NewDefaultScene,
	},
	"studio": {
		info: SceneInfo{Name: "studio", Description: "Puppet on a mirror floor lit by one area light"},
		new:  NewStudioScene,
	},
	"spheregrid": {
		info: SceneInfo{Name: "spheregrid", Description: "Grid of colored metal spheres around the puppet"},
		new:  NewSphereGridScene,
	},
	"emissive": {
		info: SceneInfo{Name: "emissive", Description: "One red emissive sphere on black"},
		new:  NewEmissiveScene,
	},
	"textures": {
		info: SceneInfo{Name: "textures", Description: "Row of spheres with checker, gradient, image and ripple mapping"},
		new:  NewTextureScene,
	},
}

// ListScenes returns every built-in scene sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, f := range builtinScenes {
		scenes = append(scenes, f.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Names returns the built-in scene names sorted
func Names() []string {
	scenes := ListScenes()
	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.Name
	}
	return names
}

// New builds a built-in scene by name, applying an optional camera override
func New(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	f, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return f.new(cameraOverrides...), nil
}
