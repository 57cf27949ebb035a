package ecs

// System is one step of a frame pipeline.
// A system's exported Query and Singleton fields are bound to the storage
// when it is registered with a Scheduler, and its queries are refreshed
// right before each Execute call. Other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
