package dd

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
}

