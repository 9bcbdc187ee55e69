package geometry

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// PuppetPart names one sphere of the articulated puppet
type PuppetPart int

const (
	PartPelvis PuppetPart = iota
	PartChest
	PartHead
	PartUpperArmLeft
	PartForearmLeft
	PartUpperArmRight
	PartForearmRight
	PartThighLeft
	PartShinLeft
	PartFootLeft
	PartThighRight
	PartShinRight
	PartFootRight

	// PuppetPartCount is the fixed size of the puppet's primitive set
	PuppetPartCount = int(PartFootRight) + 1
)

var puppetPartNames = [PuppetPartCount]string{
	"pelvis", "chest", "head",
	"upper_arm_left", "forearm_left", "upper_arm_right", "forearm_right",
	"thigh_left", "shin_left", "foot_left",
	"thigh_right", "shin_right", "foot_right",
}

func (p PuppetPart) String() string {
	if p < 0 || int(p) >= PuppetPartCount {
		return "unknown"
	}
	return puppetPartNames[p]
}

// PuppetPartByName looks up a part by its snake_case name
func PuppetPartByName(name string) (PuppetPart, bool) {
	for i, n := range puppetPartNames {
		if n == name {
			return PuppetPart(i), true
		}
	}
	return 0, false
}

// joint describes where a part hangs off its parent and how it swings
type joint struct {
	parent PuppetPart // -1 for the root
	offset core.Vec3  // attachment point in the parent's frame, at unit scale
	radius float64
	swing  float64 // multiplier on the puppet's stride angle
	phase  float64 // radians
}

// Parents always precede children so a single forward pass poses the chain
var puppetSkeleton = [PuppetPartCount]joint{
	PartPelvis:        {parent: -1, offset: core.NewVec3(0, 1.0, 0), radius: 0.16},
	PartChest:         {parent: PartPelvis, offset: core.NewVec3(0, 0.32, 0), radius: 0.2, swing: 0.15, phase: math.Pi / 2},
	PartHead:          {parent: PartChest, offset: core.NewVec3(0, 0.34, 0), radius: 0.13, swing: 0.2},
	PartUpperArmLeft:  {parent: PartChest, offset: core.NewVec3(-0.27, 0.08, 0), radius: 0.08, swing: -1.0},
	PartForearmLeft:   {parent: PartUpperArmLeft, offset: core.NewVec3(0, -0.28, 0), radius: 0.07, swing: 0.5, phase: 0.4},
	PartUpperArmRight: {parent: PartChest, offset: core.NewVec3(0.27, 0.08, 0), radius: 0.08, swing: 1.0},
	PartForearmRight:  {parent: PartUpperArmRight, offset: core.NewVec3(0, -0.28, 0), radius: 0.07, swing: 0.5, phase: 0.4},
	PartThighLeft:     {parent: PartPelvis, offset: core.NewVec3(-0.11, -0.12, 0), radius: 0.1, swing: 1.0},
	PartShinLeft:      {parent: PartThighLeft, offset: core.NewVec3(0, -0.42, 0), radius: 0.085, swing: 0.6, phase: -0.8},
	PartFootLeft:      {parent: PartShinLeft, offset: core.NewVec3(0, -0.4, 0.05), radius: 0.07},
	PartThighRight:    {parent: PartPelvis, offset: core.NewVec3(0.11, -0.12, 0), radius: 0.1, swing: -1.0},
	PartShinRight:     {parent: PartThighRight, offset: core.NewVec3(0, -0.42, 0), radius: 0.085, swing: 0.6, phase: -0.8},
	PartFootRight:     {parent: PartShinRight, offset: core.NewVec3(0, -0.4, 0.05), radius: 0.07},
}

// Puppet is a fixed set of spheres driven by a small forward-kinematic skeleton
type Puppet struct {
	Position core.Vec3 // world position of the feet origin
	Yaw      float64   // rotation about +Y in degrees
	Scale    float64
	Stride   float64 // peak swing angle in radians
	Speed    float64 // swing frequency in radians per second

	spheres [PuppetPartCount]Sphere
}

// NewPuppet creates a puppet in its rest pose
func NewPuppet(position core.Vec3, scale float64) *Puppet {
	p := &Puppet{
		Position: position,
		Scale:    scale,
		Stride:   0.5,
		Speed:    3.0,
	}
	p.Pose(0)
	return p
}

// Pose updates every part's sphere for animation time t (seconds)
func (p *Puppet) Pose(t float64) {
	var positions [PuppetPartCount]core.Vec3
	var angles [PuppetPartCount]float64

	yaw := p.Yaw * math.Pi / 180
	cosYaw, sinYaw := math.Cos(yaw), math.Sin(yaw)

	for i := 0; i < PuppetPartCount; i++ {
		j := puppetSkeleton[i]
		local := j.swing * p.Stride * math.Sin(p.Speed*t+j.phase)

		var parentPos core.Vec3
		var parentAngle float64
		if j.parent >= 0 {
			parentPos = positions[j.parent]
			parentAngle = angles[j.parent]
		}

		// The parent's accumulated swing (about X) orients this attachment point
		offset := rotateX(j.offset.Multiply(p.Scale), parentAngle)
		positions[i] = parentPos.Add(offset)
		angles[i] = parentAngle + local
	}

	for i := range positions {
		local := positions[i]
		world := core.NewVec3(
			local.X*cosYaw+local.Z*sinYaw,
			local.Y,
			-local.X*sinYaw+local.Z*cosYaw,
		).Add(p.Position)
		p.spheres[i] = Sphere{Center: world, Radius: puppetSkeleton[i].radius * p.Scale}
	}
}

// Sphere returns the posed sphere for a part
func (p *Puppet) Sphere(part PuppetPart) *Sphere {
	return &p.spheres[part]
}

// Primitives returns the puppet's spheres tagged with puppet references, in part order
func (p *Puppet) Primitives() []Primitive {
	prims := make([]Primitive, PuppetPartCount)
	for i := range p.spheres {
		prims[i] = Primitive{
			Ref:   PrimitiveRef{Kind: PrimitivePuppet, Index: i},
			Shape: &p.spheres[i],
		}
	}
	return prims
}

func rotateX(v core.Vec3, angle float64) core.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return core.NewVec3(v.X, v.Y*c-v.Z*s, v.Y*s+v.Z*c)
}
