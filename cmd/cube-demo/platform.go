package main

import "github.com/go-gl/glfw/v3.3/glfw"

// glfwPlatform adapts a GLFW window to app.Platform
type glfwPlatform struct {
	window *glfw.Window
}

func (p glfwPlatform) ShouldClose() bool { return p.window.ShouldClose() }
func (p glfwPlatform) RequestClose()     { p.window.SetShouldClose(true) }
func (p glfwPlatform) PollEvents()       { glfw.PollEvents() }
func (p glfwPlatform) SwapBuffers()      { p.window.SwapBuffers() }
func (p glfwPlatform) Time() float64     { return glfw.GetTime() }
