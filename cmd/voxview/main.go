//go:build voxview

// Command voxview is a minimal interactive viewer for .bcf scenes: an
// orbit camera, left-click ray-picking into the loaded octree via the
// raycast package, and a freetype HUD reporting the last pick.
//
// This is a thin host around the core packages, not part of them — it
// is gated behind the voxview build tag so `go build ./...` of the
// core module never needs a GL context or a window manager.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"

	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/bcf"
	"github.com/soypat/voxcore/raycast"
)

var (
	inFile = flag.String("in", "", "scene .bcf file to load")
	width  = flag.Int("width", 800, "window width")
	height = flag.Int("height", 600, "window height")
)

func init() {
	runtime.LockOSThread() // Required whenever a GL context is used.
}

func main() {
	flag.Parse()
	root, err := loadScene(*inFile)
	if err != nil {
		log.Fatal(err)
	}

	window, term, err := startGLFW(*width, *height)
	if err != nil {
		log.Fatal(err)
	}
	defer term()

	prog, vao, _, err := makeQuadProgram(bgFragSource)
	if err != nil {
		log.Fatal(err)
	}
	hudProg, hudVAO, texUniform, err := makeQuadProgram(hudFragSource)
	if err != nil {
		log.Fatal(err)
	}
	hud := newHUD()
	defer hud.Destroy()
	hud.SetText("voxview ready — left click to raycast")

	var (
		yaw, pitch   float64
		camDist      = 3.0
		lastX, lastY = 0.0, 0.0
		dragging     = false
	)

	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if !dragging {
			return
		}
		yaw += (x - lastX) * 0.005
		pitch -= (y - lastY) * 0.005
		lastX, lastY = x, y
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		camDist -= yoff * 0.1
		if camDist < 0.1 {
			camDist = 0.1
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			dragging = true
			lastX, lastY = w.GetCursorPos()
		} else if action == glfw.Release {
			dragging = false
			origin, dir := cameraRay(yaw, pitch, camDist)
			reportHit(hud, root, origin, dir)
		}
	})

	for !window.ShouldClose() {
		gl.ClearColor(0.05, 0.05, 0.08, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		prog.Bind()
		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)

		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		hudProg.Bind()
		hud.Bind(texUniform)
		gl.BindVertexArray(hudVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.Disable(gl.BLEND)

		window.SwapBuffers()
		glfw.PollEvents()
		time.Sleep(time.Second / 60)
	}
}

func loadScene(path string) (voxcore.Cube[uint8], error) {
	if path == "" {
		return voxcore.NewSolid[uint8](1), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bcf.Parse(data)
}

// cameraRay builds an orbit camera's eye position and forward direction
// in the octree's center-based [-1,1]^3 local space.
func cameraRay(yaw, pitch, dist float64) (origin, dir ms3.Vec) {
	cy, sy := cosSin(yaw)
	cp, sp := cosSin(pitch)
	eye := ms3.Vec{
		X: float32(dist * cp * sy),
		Y: float32(dist * sp),
		Z: float32(dist * cp * cy),
	}
	forward := ms3.Scale(-1/vecLen(eye), eye)
	return eye, forward
}

func cosSin(rad float64) (c, s float64) {
	return math.Cos(rad), math.Sin(rad)
}

func vecLen(v ms3.Vec) float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

func reportHit(hud *hudText, root voxcore.Cube[uint8], origin, dir ms3.Vec) {
	isEmpty := func(v uint8) bool { return v == 0 }
	hit, ok := raycast.Raycast(root, origin, dir, 8, isEmpty)
	if !ok {
		hud.SetText("Hit: None")
		return
	}
	hud.SetText(fmt.Sprintf("Hit: depth=%d pos=(%d,%d,%d) normal=%s*%.0f",
		hit.Coord.Depth, hit.Coord.Pos.X, hit.Coord.Pos.Y, hit.Coord.Pos.Z, hit.NormalAxis, hit.NormalSign))
}

func startGLFW(width, height int) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, err
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err = glfw.CreateWindow(width, height, "voxview", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, err
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, nil, err
	}
	return window, glfw.Terminate, nil
}

const quadVertexSource = `#version 460
in vec2 aPos;
out vec2 vTexCoord;
void main() {
    vTexCoord = aPos * 0.5 + 0.5;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const bgFragSource = `#version 460
in vec2 vTexCoord;
out vec4 fragColor;
void main() {
    fragColor = vec4(0.1, 0.12, 0.18, 1.0);
}
` + "\x00"

const hudFragSource = `#version 460
in vec2 vTexCoord;
out vec4 fragColor;
uniform sampler2D uTex;
void main() {
    fragColor = texture(uTex, vec2(vTexCoord.x, 1.0 - vTexCoord.y));
}
` + "\x00"

// makeQuadProgram compiles a full-screen quad with fragSource as its
// fragment shader, returning the bound program, its VAO, and (if the
// shader declares uTex) that uniform's location.
func makeQuadProgram(fragSource string) (prog glgl.Program, vao uint32, texUniform int32, err error) {
	prog, err = glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   quadVertexSource,
		Fragment: fragSource,
	})
	if err != nil {
		return prog, 0, 0, err
	}
	prog.Bind()

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	vertices := []float32{
		-1, -1, 1, -1, -1, 1,
		-1, 1, 1, -1, 1, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	posAttrib, err := prog.AttribLocation("aPos\x00")
	if err != nil {
		return prog, vao, 0, err
	}
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointer(posAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	if loc, lerr := prog.UniformLocation("uTex\x00"); lerr == nil {
		texUniform = loc
	}
	return prog, vao, texUniform, nil
}

// hudText rasterizes a single line of status text with freetype and
// uploads it as a GL texture each time it changes.
type hudText struct {
	font    *truetype.Font
	texture uint32
	dirty   bool
	text    string
}

func newHUD() *hudText {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	return &hudText{font: f, texture: tex}
}

func (h *hudText) SetText(s string) {
	h.text = s
	h.dirty = true
}

func (h *hudText) Destroy() {
	gl.DeleteTextures(1, &h.texture)
}

func (h *hudText) Bind(texUniform int32) {
	if h.dirty {
		h.upload()
		h.dirty = false
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.Uniform1i(texUniform, 0)
}

func (h *hudText) upload() {
	const w, hgt = 512, 32
	img := image.NewRGBA(image.Rect(0, 0, w, hgt))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Src)

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(h.font)
	c.SetFontSize(14)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(color.RGBA{255, 255, 255, 255}))
	_, _ = c.DrawString(h.text, fixed.Point26_6{X: fixed.I(8), Y: fixed.I(20)})

	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, hgt, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}
