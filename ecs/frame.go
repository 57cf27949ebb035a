package ecs

// UpdateFrame is the per-frame context handed to every system.
type UpdateFrame struct {
	// DeltaTime is the elapsed time in seconds covered by this frame.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  commands,
		Storage:   storage,
	}
}
