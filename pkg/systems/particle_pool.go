package systems

import (
	"math/rand"
	"time"

	"github.com/decker502/herbscape/pkg/components"
	"github.com/decker502/herbscape/pkg/config"
)

// ParticlePool owns the bounded population of live backdrop particles.
//
// The backing store is a fixed-size array of config.MaxParticles entries; live
// particles occupy the prefix [0, count). Removal swaps the last live particle
// into the freed slot, so neither spawning nor culling allocates.
//
// The pool is driven by the frame loop only and is not safe for concurrent use.
type ParticlePool struct {
	particles [config.MaxParticles]components.ParticleComponent
	count     int
	rng       RandomSource
}

// NewParticlePool creates an empty pool with a time-seeded random source.
func NewParticlePool() *ParticlePool {
	return NewParticlePoolWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewParticlePoolWithSource creates an empty pool using rng for spawn parameters.
func NewParticlePoolWithSource(rng RandomSource) *ParticlePool {
	return &ParticlePool{rng: rng}
}

// Len returns the number of live particles.
func (pp *ParticlePool) Len() int {
	return pp.count
}

// Particles returns the live particles. The slice aliases the pool's storage and
// is only valid until the next Spawn/Tick/Clear.
func (pp *ParticlePool) Particles() []components.ParticleComponent {
	return pp.particles[:pp.count]
}

// Clear drops every live particle.
func (pp *ParticlePool) Clear() {
	pp.count = 0
}

// SpawnIfUnderCapacity adds one particle initialized by style when the pool
// holds fewer than config.MaxParticles. Returns whether a particle was added.
func (pp *ParticlePool) SpawnIfUnderCapacity(style Style, bounds Bounds) bool {
	if pp.count >= config.MaxParticles {
		return false
	}
	pp.particles[pp.count] = style.Initialize(bounds, pp.rng)
	pp.count++
	return true
}

// Tick advances every live particle by one frame and culls the ones that fail
// the survival test. Returns how many particles were removed.
//
// Per particle, in order:
//  1. age += 1
//  2. position += velocity
//  3. style perturbation of the velocity
//  4. fade multiplier for the new age
//  5. removal when age ≥ lifespan or outside bounds expanded by 2×size
func (pp *ParticlePool) Tick(style Style, bounds Bounds) int {
	removed := 0
	for i := 0; i < pp.count; {
		p := &pp.particles[i]

		p.Age++
		p.X += p.VelocityX
		p.Y += p.VelocityY
		style.Perturb(p)
		p.Fade = FadeMultiplier(p.Age, p.Lifespan)

		if Survives(p, bounds) {
			i++
			continue
		}

		// swap-remove：末尾粒子尚未处理，移入当前位置后在下一轮处理
		pp.count--
		pp.particles[i] = pp.particles[pp.count]
		removed++
	}
	return removed
}

// Survives reports whether p is still alive: younger than its lifespan and
// inside the surface expanded by 2×size on every side.
func Survives(p *components.ParticleComponent, bounds Bounds) bool {
	if p.Age >= p.Lifespan {
		return false
	}
	return bounds.ContainsExpanded(p.X, p.Y, p.Size*config.BoundsMarginFactor)
}

// FadeMultiplier returns the age-based opacity envelope in [0, 1]:
// a linear fade-in over the first fifth of life, a plateau at 1, and a linear
// fade-out over the last fifth.
func FadeMultiplier(age, lifespan int) float64 {
	if lifespan <= 0 {
		return 0
	}
	r := float64(age) / float64(lifespan)
	switch {
	case r <= 0:
		return 0
	case r >= 1:
		return 0
	case r < 0.2:
		return r * 5
	case r > 0.8:
		return (1 - r) * 5
	default:
		return 1
	}
}

// RenderedOpacity combines a particle's base opacity, its fade envelope and the
// scene-level activation opacity.
func RenderedOpacity(p *components.ParticleComponent, activation float64) float64 {
	if activation < 0 {
		activation = 0
	} else if activation > 1 {
		activation = 1
	}
	return p.BaseOpacity * p.Fade * activation
}
