package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/lights"
	"github.com/df07/go-interactive-raytracer/pkg/material"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// vec3 decodes a YAML sequence of three numbers
type vec3 core.Vec3

func (v *vec3) UnmarshalYAML(node *yaml.Node) error {
	var values []float64
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("line %d: expected 3 numbers, got %d", node.Line, len(values))
	}
	*v = vec3{X: values[0], Y: values[1], Z: values[2]}
	return nil
}

func (v vec3) vec() core.Vec3 { return core.Vec3(v) }

// color converts v to a spectrum, refusing negative channels
func color(field string, v vec3) (core.Vec3, error) {
	c := v.vec()
	if c.X < 0 || c.Y < 0 || c.Z < 0 {
		return c, newSceneError(field, "must not be negative, got [%g, %g, %g]", c.X, c.Y, c.Z)
	}
	return c, nil
}

type sceneFile struct {
	Camera      cameraSpec      `yaml:"camera"`
	Environment environmentSpec `yaml:"environment"`
	Spheres     []sphereSpec    `yaml:"spheres"`
	Puppet      *puppetSpec     `yaml:"puppet"`
}

type cameraSpec struct {
	Center        vec3    `yaml:"center"`
	LookAt        vec3    `yaml:"look_at"`
	Up            vec3    `yaml:"up"`
	VFov          float64 `yaml:"vfov"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance"`
}

type environmentSpec struct {
	Type      string  `yaml:"type"` // uniform, gradient or image
	Color     vec3    `yaml:"color"`
	Top       vec3    `yaml:"top"`
	Bottom    vec3    `yaml:"bottom"`
	Image     string  `yaml:"image"`
	Intensity float64 `yaml:"intensity"`
}

type sphereSpec struct {
	Center   vec3          `yaml:"center"`
	Radius   float64       `yaml:"radius"`
	Material *materialSpec `yaml:"material"`
	Texture  *textureSpec  `yaml:"texture"`
	Bump     *bumpSpec     `yaml:"bump"`
}

type materialSpec struct {
	Type     string        `yaml:"type"`
	Albedo   vec3          `yaml:"albedo"`
	Fuzz     float64       `yaml:"fuzz"`
	Exponent float64       `yaml:"exponent"`
	IOR      float64       `yaml:"ior"`
	Emission vec3          `yaml:"emission"`
	Base     *materialSpec `yaml:"base"`   // glowing
	First    *materialSpec `yaml:"first"`  // mix
	Second   *materialSpec `yaml:"second"` // mix
	Ratio    float64       `yaml:"ratio"`  // mix: probability of second
	Outer    *materialSpec `yaml:"outer"`  // layered: coating
	Inner    *materialSpec `yaml:"inner"`  // layered: base
}

type textureSpec struct {
	Type   string `yaml:"type"` // solid, checker, gradient or image
	Color  vec3   `yaml:"color"`
	Color1 vec3   `yaml:"color1"`
	Color2 vec3   `yaml:"color2"`
	CellsU int    `yaml:"cells_u"`
	CellsV int    `yaml:"cells_v"`
	Top    vec3   `yaml:"top"`
	Bottom vec3   `yaml:"bottom"`
	Image  string `yaml:"image"`
}

type bumpSpec struct {
	Type      string  `yaml:"type"` // ripple
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

type puppetSpec struct {
	Position vec3    `yaml:"position"`
	Scale    float64 `yaml:"scale"`
	Yaw      float64 `yaml:"yaw"`
	Stride   float64 `yaml:"stride"`
	Speed    float64 `yaml:"speed"`

	// material covers every part, materials lists one per part in part
	// order. parts then overrides single parts by name.
	Material  *materialSpec           `yaml:"material"`
	Parts     map[string]materialSpec `yaml:"parts"`
	Materials []materialSpec          `yaml:"materials"`
}

// LoadScene reads a YAML scene file. Image paths are resolved relative to
// the file's directory.
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return ParseScene(data, filepath.Dir(path))
}

// ParseScene builds a scene from YAML. baseDir anchors relative image paths.
func ParseScene(data []byte, baseDir string) (*scene.Scene, error) {
	var file sceneFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newSceneError("document", "is empty")
		}
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}

	b := &sceneBuilder{baseDir: baseDir}
	return b.build(&file)
}

type sceneBuilder struct {
	baseDir string
}

func (b *sceneBuilder) build(file *sceneFile) (*scene.Scene, error) {
	s := &scene.Scene{}

	camera, err := b.camera(file.Camera)
	if err != nil {
		return nil, err
	}
	s.SetCamera(camera)

	if s.Environment, err = b.environment(file.Environment); err != nil {
		return nil, err
	}

	for i, spec := range file.Spheres {
		sphere, err := b.sphere(fmt.Sprintf("spheres[%d]", i), spec)
		if err != nil {
			return nil, err
		}
		s.AddSurface(sphere)
	}

	if file.Puppet != nil {
		if err := b.puppet(s, file.Puppet); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, newSceneError("scene", "%v", err)
	}
	return s, nil
}

func (b *sceneBuilder) camera(spec cameraSpec) (geometry.CameraConfig, error) {
	config := geometry.CameraConfig{
		Center:        spec.Center.vec(),
		LookAt:        spec.LookAt.vec(),
		Up:            spec.Up.vec(),
		VFov:          spec.VFov,
		Aperture:      spec.Aperture,
		FocusDistance: spec.FocusDistance,
	}
	if config.VFov == 0 {
		config.VFov = 40
	}
	switch {
	case config.VFov <= 0 || config.VFov >= 180:
		return config, newSceneError("camera.vfov", "must be in (0,180), got %g", config.VFov)
	case config.Center == config.LookAt:
		return config, newSceneError("camera.look_at", "must differ from center")
	case config.Aperture < 0:
		return config, newSceneError("camera.aperture", "must not be negative, got %g", config.Aperture)
	}
	return config, nil
}

func (b *sceneBuilder) environment(spec environmentSpec) (lights.InfiniteLight, error) {
	switch spec.Type {
	case "uniform":
		c, err := color("environment.color", spec.Color)
		if err != nil {
			return nil, err
		}
		return lights.NewUniformInfiniteLight(c), nil
	case "gradient":
		top, err := color("environment.top", spec.Top)
		if err != nil {
			return nil, err
		}
		bottom, err := color("environment.bottom", spec.Bottom)
		if err != nil {
			return nil, err
		}
		return lights.NewGradientInfiniteLight(top, bottom), nil
	case "image":
		if spec.Intensity < 0 {
			return nil, newSceneError("environment.intensity", "must not be negative, got %g", spec.Intensity)
		}
		tex, err := b.image("environment.image", spec.Image)
		if err != nil {
			return nil, err
		}
		intensity := spec.Intensity
		if intensity == 0 {
			intensity = 1
		}
		return lights.NewTexturedInfiniteLight(tex, intensity), nil
	case "":
		return nil, newSceneError("environment.type", "is required")
	default:
		return nil, newSceneError("environment.type", "unknown environment %q", spec.Type)
	}
}

func (b *sceneBuilder) sphere(field string, spec sphereSpec) (scene.SceneSphere, error) {
	if spec.Radius <= 0 {
		return scene.SceneSphere{}, newSceneError(field+".radius", "must be positive, got %g", spec.Radius)
	}
	if spec.Material == nil {
		return scene.SceneSphere{}, newSceneError(field+".material", "is required")
	}

	mat, err := b.material(field+".material", spec.Material)
	if err != nil {
		return scene.SceneSphere{}, err
	}
	sphere := scene.SceneSphere{
		Sphere:   geometry.NewSphere(spec.Center.vec(), spec.Radius),
		Material: mat,
	}

	if spec.Texture != nil {
		if sphere.Texture, err = b.texture(field+".texture", spec.Texture); err != nil {
			return scene.SceneSphere{}, err
		}
	}
	if spec.Bump != nil {
		if sphere.Bump, err = b.bump(field+".bump", spec.Bump); err != nil {
			return scene.SceneSphere{}, err
		}
	}
	return sphere, nil
}

func (b *sceneBuilder) material(field string, spec *materialSpec) (material.Material, error) {
	if spec == nil {
		return nil, newSceneError(field, "is required")
	}
	switch spec.Type {
	case "lambertian":
		albedo, err := color(field+".albedo", spec.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := color(field+".albedo", spec.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, spec.Fuzz), nil
	case "glossy":
		albedo, err := color(field+".albedo", spec.Albedo)
		if err != nil {
			return nil, err
		}
		if spec.Exponent <= 0 {
			return nil, newSceneError(field+".exponent", "must be positive, got %g", spec.Exponent)
		}
		return material.NewGlossy(albedo, spec.Exponent), nil
	case "dielectric":
		if spec.IOR <= 0 {
			return nil, newSceneError(field+".ior", "must be positive, got %g", spec.IOR)
		}
		return material.NewDielectric(spec.IOR), nil
	case "emissive":
		emission, err := color(field+".emission", spec.Emission)
		if err != nil {
			return nil, err
		}
		return material.NewEmissive(emission), nil
	case "glowing":
		emission, err := color(field+".emission", spec.Emission)
		if err != nil {
			return nil, err
		}
		base, err := b.material(field+".base", spec.Base)
		if err != nil {
			return nil, err
		}
		return material.NewGlowing(base, emission), nil
	case "mix":
		if spec.Ratio < 0 || spec.Ratio > 1 {
			return nil, newSceneError(field+".ratio", "must be in [0,1], got %g", spec.Ratio)
		}
		first, err := b.material(field+".first", spec.First)
		if err != nil {
			return nil, err
		}
		second, err := b.material(field+".second", spec.Second)
		if err != nil {
			return nil, err
		}
		return material.NewMix(first, second, spec.Ratio), nil
	case "layered":
		outer, err := b.material(field+".outer", spec.Outer)
		if err != nil {
			return nil, err
		}
		inner, err := b.material(field+".inner", spec.Inner)
		if err != nil {
			return nil, err
		}
		return material.NewLayered(outer, inner), nil
	case "":
		return nil, newSceneError(field+".type", "is required")
	default:
		return nil, newSceneError(field+".type", "unknown material %q", spec.Type)
	}
}

func (b *sceneBuilder) texture(field string, spec *textureSpec) (material.SphericalTexture, error) {
	switch spec.Type {
	case "solid":
		c, err := color(field+".color", spec.Color)
		if err != nil {
			return nil, err
		}
		return material.NewSolidColor(c), nil
	case "checker":
		color1, err := color(field+".color1", spec.Color1)
		if err != nil {
			return nil, err
		}
		color2, err := color(field+".color2", spec.Color2)
		if err != nil {
			return nil, err
		}
		return material.NewChecker(spec.CellsU, spec.CellsV, color1, color2), nil
	case "gradient":
		top, err := color(field+".top", spec.Top)
		if err != nil {
			return nil, err
		}
		bottom, err := color(field+".bottom", spec.Bottom)
		if err != nil {
			return nil, err
		}
		return material.NewGradient(top, bottom), nil
	case "image":
		tex, err := b.image(field+".image", spec.Image)
		if err != nil {
			return nil, err
		}
		return tex, nil
	default:
		return nil, newSceneError(field+".type", "unknown texture %q", spec.Type)
	}
}

func (b *sceneBuilder) bump(field string, spec *bumpSpec) (material.BumpMap, error) {
	switch spec.Type {
	case "ripple":
		if spec.Frequency <= 0 {
			return nil, newSceneError(field+".frequency", "must be positive, got %g", spec.Frequency)
		}
		return material.NewRipple(spec.Frequency, spec.Amplitude), nil
	default:
		return nil, newSceneError(field+".type", "unknown bump map %q", spec.Type)
	}
}

func (b *sceneBuilder) image(field, path string) (*material.ImageTexture, error) {
	if path == "" {
		return nil, newSceneError(field, "is required")
	}
	if !filepath.IsAbs(path) && b.baseDir != "" {
		path = filepath.Join(b.baseDir, path)
	}
	data, err := LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return data.Texture(), nil
}

func (b *sceneBuilder) puppet(s *scene.Scene, spec *puppetSpec) error {
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return newSceneError("puppet.scale", "must be positive, got %g", scale)
	}

	puppet := geometry.NewPuppet(spec.Position.vec(), scale)
	puppet.Yaw = spec.Yaw
	if spec.Stride != 0 {
		puppet.Stride = spec.Stride
	}
	if spec.Speed != 0 {
		puppet.Speed = spec.Speed
	}
	puppet.Pose(0)

	switch {
	case len(spec.Materials) > 0 && spec.Material != nil:
		return newSceneError("puppet", "set either material or materials, not both")
	case len(spec.Materials) > 0 && len(spec.Materials) != geometry.PuppetPartCount:
		return newSceneError("puppet.materials", "need %d materials, got %d", geometry.PuppetPartCount, len(spec.Materials))
	case len(spec.Materials) > 0:
		s.Puppet = puppet
		for i := range spec.Materials {
			mat, err := b.material(fmt.Sprintf("puppet.materials[%d]", i), &spec.Materials[i])
			if err != nil {
				return err
			}
			s.PuppetMaterials[i] = mat
		}
	default:
		mat, err := b.material("puppet.material", spec.Material)
		if err != nil {
			return err
		}
		s.SetPuppet(puppet, mat)
	}

	for name, partSpec := range spec.Parts {
		part, ok := geometry.PuppetPartByName(name)
		if !ok {
			return newSceneError("puppet.parts", "unknown part %q", name)
		}
		partSpec := partSpec
		mat, err := b.material("puppet.parts."+name, &partSpec)
		if err != nil {
			return err
		}
		s.PuppetMaterials[part] = mat
	}
	return nil
}
