package main

import (
	"runtime"

	"github.com/gekko3d/nucleus/cmd"
)

// GLFW and the WebGPU surface must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
