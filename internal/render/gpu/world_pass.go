package gpu

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/younwookim/phantom/internal/application/scene"
	"github.com/younwookim/phantom/internal/render/hal"
)

//go:embed shaders/scene.kage
var sceneShader []byte

// worldPass draws scene draw lists with depth testing.
type worldPass struct {
	shader   hal.ShaderModule
	pipeline hal.RenderPipeline
}

func newWorldPass(device hal.Device, format gputypes.TextureFormat) (*worldPass, error) {
	shader, err := device.CreateShaderModule(hal.ShaderModuleDescriptor{
		Label:  "Scene Shader",
		Source: sceneShader,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scene shader: %w", err)
	}
	pipeline, err := device.CreateRenderPipeline(hal.RenderPipelineDescriptor{
		Label:        "Scene Pipeline",
		Shader:       shader,
		TargetFormat: format,
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
		},
	})
	if err != nil {
		shader.Destroy()
		return nil, fmt.Errorf("failed to create scene pipeline: %w", err)
	}
	return &worldPass{shader: shader, pipeline: pipeline}, nil
}

// execute maps normalized device coordinates to target pixels and draws
// every call in list.
func (p *worldPass) execute(pass hal.RenderPass, list *scene.DrawList, width, height uint32) {
	if list.Len() == 0 {
		return
	}
	w, h := float32(width), float32(height)
	pass.SetPipeline(p.pipeline)
	pass.SetBindTexture(nil)
	pass.SetScissorRect(image.Rect(0, 0, int(width), int(height)))
	for _, call := range list.Calls {
		verts := make([]hal.Vertex, len(call.Vertices))
		for i, v := range call.Vertices {
			a := v.Color[3]
			verts[i] = hal.Vertex{
				Position: [2]float32{
					(v.Position[0] + 1) / 2 * w,
					(1 - v.Position[1]) / 2 * h,
				},
				Color: [4]float32{v.Color[0] * a, v.Color[1] * a, v.Color[2] * a, a},
			}
		}
		pass.DrawIndexed(verts, call.Indices)
	}
}

func (p *worldPass) destroy() {
	p.pipeline.Destroy()
	p.shader.Destroy()
}
