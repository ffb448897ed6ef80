// Stress test for the aspect registry, GJK and the integrator.
//
// Profiling:
// go build ./cmd/aspectbench
// ./aspectbench -profile cpu
// go tool pprof -http=":8000" ./aspectbench cpu.pprof
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"aspect3d/internal/components"
	"aspect3d/internal/engine"
	"aspect3d/internal/geom"
	"aspect3d/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/muesli/termenv"
	"github.com/pkg/profile"
)

var out = termenv.NewOutput(os.Stdout)

func main() {
	entities := flag.Int("entities", 10000, "entities per registry round")
	rounds := flag.Int("rounds", 20, "registry rounds")
	pairs := flag.Int("pairs", 20000, "GJK queries")
	ticks := flag.Int("ticks", 600, "integrator ticks")
	mode := flag.String("profile", "", "cpu or mem")
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *mode)
		os.Exit(2)
	}

	rng := rand.New(rand.NewPCG(42, 42))
	benchRegistry(*entities, *rounds)
	benchGJK(rng, *pairs)
	benchIntegrator(rng, *entities/10, *ticks)
}

func header(s string) {
	fmt.Println(out.String(s).Bold().Foreground(out.Color("12")))
}

func result(label string, format string, args ...any) {
	fmt.Printf("  %-22s %s\n", label, out.String(fmt.Sprintf(format, args...)).Foreground(out.Color("10")))
}

func warn(label string, format string, args ...any) {
	fmt.Printf("  %-22s %s\n", label, out.String(fmt.Sprintf(format, args...)).Foreground(out.Color("9")))
}

func newWorld() *engine.World {
	w := engine.NewWorld()
	components.Register(w)
	return w
}

// benchRegistry churns entities: create, iterate, destroy every other one,
// refill. Handles kept across the churn must keep resolving.
func benchRegistry(n, rounds int) {
	header(fmt.Sprintf("registry: %d entities x %d rounds", n, rounds))
	w := newWorld()
	ids := make([]engine.AspectID, 0, n)
	for i := 0; i < n; i++ {
		e := w.NewEntity()
		engine.Add[components.Transform](w, e)
		_, id := engine.Add[components.RigidBody](w, e)
		ids = append(ids, id)
	}

	start := time.Now()
	var visited int
	for r := 0; r < rounds; r++ {
		for _, rb := range engine.All[components.RigidBody](w) {
			rb.AngularVelocity.Y += 1
			visited++
		}
		for i := 0; i < len(ids); i += 2 {
			w.DestroyEntity(ids[i].Entity)
			e := w.NewEntity()
			engine.Add[components.Transform](w, e)
			_, ids[i] = engine.Add[components.RigidBody](w, e)
		}
	}
	elapsed := time.Since(start)

	stale := 0
	for _, id := range ids {
		if _, ok := engine.Lookup[components.RigidBody](w, id); !ok {
			stale++
		}
	}
	result("time", "%v (%v per aspect visit)", elapsed.Round(time.Microsecond), (elapsed / time.Duration(max(visited, 1))).Round(time.Nanosecond))
	if stale > 0 {
		warn("stale handles", "%d", stale)
	} else {
		result("stale handles", "0")
	}
}

func cloud(rng *rand.Rand, n int, center rl.Vector3) []rl.Vector3 {
	pts := make([]rl.Vector3, n)
	for i := range pts {
		pts[i] = rl.Vector3Add(center, rl.Vector3{
			X: rng.Float32()*2 - 1,
			Y: rng.Float32()*2 - 1,
			Z: rng.Float32()*2 - 1,
		})
	}
	return pts
}

func benchGJK(rng *rand.Rand, n int) {
	header(fmt.Sprintf("gjk: %d random cloud pairs", n))
	var counts [3]int
	var iterations, worst int
	var elapsed time.Duration
	for i := 0; i < n; i++ {
		a := cloud(rng, 8+rng.IntN(24), rl.Vector3Zero())
		offset := rl.Vector3{X: rng.Float32()*6 - 3, Y: rng.Float32()*6 - 3, Z: rng.Float32()*6 - 3}
		b := cloud(rng, 8+rng.IntN(24), offset)

		start := time.Now()
		m := physics.GJK(a, b, physics.Options{})
		elapsed += time.Since(start)

		counts[m.Status]++
		iterations += m.Iterations
		worst = max(worst, m.Iterations)
	}
	result("time", "%v per query", (elapsed / time.Duration(max(n, 1))).Round(time.Nanosecond))
	result("separated", "%d", counts[physics.Separated])
	result("intersecting", "%d", counts[physics.Intersecting])
	if counts[physics.Unknown] > 0 {
		warn("unknown", "%d", counts[physics.Unknown])
	}
	result("iterations", "%.2f mean, %d worst", float64(iterations)/float64(max(n, 1)), worst)
}

// benchIntegrator spins boxes for ticks steps and reports how far the
// rotation matrices drift from orthonormal.
func benchIntegrator(rng *rand.Rand, n, ticks int) {
	header(fmt.Sprintf("integrator: %d bodies x %d ticks", n, ticks))
	w := newWorld()
	for i := 0; i < n; i++ {
		e := w.NewEntity()
		engine.Add[components.Transform](w, e)
		rb, _ := engine.Add[components.RigidBody](w, e)
		rb.SetMass(1)
		rb.Shape = geom.Box(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
		rb.AngularVelocity = rl.Vector3{X: rng.Float32() * 20, Y: rng.Float32() * 20, Z: rng.Float32() * 20}
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		physics.Step(w, 1.0/120)
	}
	elapsed := time.Since(start)

	var drift float32
	for _, t := range engine.All[components.Transform](w) {
		r := t.RotationMatrix
		for i := 0; i < 3; i++ {
			drift = math32.Max(drift, math32.Abs(rl.Vector3Length(r[i])-1))
			drift = math32.Max(drift, math32.Abs(rl.Vector3DotProduct(r[i], r[(i+1)%3])))
		}
	}
	result("time", "%v per tick", (elapsed / time.Duration(max(ticks, 1))).Round(time.Microsecond))
	if drift > 1e-4 {
		warn("orthonormal drift", "%g", drift)
	} else {
		result("orthonormal drift", "%g", drift)
	}
}
