package main

import (
	"math"

	"github.com/annel0/blockverse/internal/sim"
	"github.com/annel0/blockverse/internal/world/block"
)

// Длительности фаз сценария в тиках
const (
	walkTicks  = 90
	turnTicks  = 30
	digTicks   = 20
	buildTicks = 20
	cycleTicks = walkTicks + turnTicks + digTicks + buildTicks
)

var buildMaterials = []block.ID{block.Dirt, block.Stone, block.Sand, block.Wood}

// script воспроизводит повторяющийся сценарий: прогулка с прыжками,
// поворот, копание под ногами, постройка перед собой.
type script struct {
	pitch float64
}

func newScript() *script {
	return &script{}
}

// Next возвращает ввод для тика с номером tick (счёт с нуля)
func (s *script) Next(tick uint64) sim.Input {
	phase := tick % cycleTicks
	cycle := tick / cycleTicks

	var in sim.Input
	switch {
	case phase < walkTicks:
		in.Forward = true
		in.Jump = phase%30 == 0
		in.LookPitch = s.lookAt(0)
	case phase < walkTicks+turnTicks:
		in.LookYaw = (math.Pi / 2) / turnTicks
	case phase < walkTicks+turnTicks+digTicks:
		in.LookPitch = s.lookAt(-math.Pi / 2)
		in.Break = phase%5 == 0
	default:
		in.LookPitch = s.lookAt(-math.Pi / 6)
		if phase == walkTicks+turnTicks+digTicks {
			in.Select = buildMaterials[int(cycle)%len(buildMaterials)]
		}
		in.Place = phase%5 == 0
	}
	return in
}

// lookAt возвращает приращение pitch, переводящее взгляд к target за один тик
func (s *script) lookAt(target float64) float64 {
	delta := target - s.pitch
	s.pitch = target
	return delta
}
