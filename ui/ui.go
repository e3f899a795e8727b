package ui

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/nescore/emulator/nes"
)

// Run is the main entrypoint: it opens a window, drives the console
// frame by frame, and feeds rendered frames to OpenGL and controller
// input back into the console.
func Run(console *nes.Console, width, height int) {
	if err := glfw.Init(); err != nil {
		glog.Fatalln(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	window, err := glfw.CreateWindow(width, height, "nescore", nil, nil)
	if err != nil {
		glog.Fatalln(err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glog.Fatalln(err)
	}
	program, err := newProgram()
	if err != nil {
		glog.Fatalln(err)
	}
	gl.UseProgram(program)

	a := newAudio()
	if err := a.start(); err != nil {
		glog.Errorln(err)
	} else {
		defer a.terminate()
		console.SetAudioOut(a.channel)
	}

	for !window.ShouldClose() {
		console.RunFrame()
		updateTexture(program, console.PPU.Image())
		console.SetButtons1(getKeys(window))
		window.SwapBuffers()
		glfw.PollEvents()
		time.Sleep(time.Millisecond)
	}
}
