package pong

import "image/color"

const (
	ArenaWidth  = 500
	ArenaHeight = 500

	StartingSpeed     = 200.0
	SpeedIncrease     = 25.0
	CollisionCooldown = 0.2

	PaddleWidth  = 30.0
	PaddleHeight = 80.0
	PaddleMargin = 20.0
	BallSize     = 30.0
)

var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
