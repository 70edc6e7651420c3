package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/backend"
)

var capsListExtensions bool

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Print the capabilities detected for the driver",
	RunE:  runCaps,
}

func init() {
	capsCmd.Flags().BoolVarP(&capsListExtensions, "extensions", "e", false, "list the supported extensions")
}

func runCaps(cmd *cobra.Command, _ []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	d, closeDriver, err := backend.Open(driverName)
	if err != nil {
		return err
	}
	defer closeDriver()

	reg := glstate.NewRegistry(p.RegistryOptions()...)
	ext := reg.Get(0, d)
	return writeCaps(cmd.OutOrStdout(), ext, capsListExtensions)
}

func writeCaps(out io.Writer, ext *glstate.Extensions, listExtensions bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "vendor\t%s\n", ext.Vendor)
	fmt.Fprintf(w, "renderer\t%s\n", ext.Renderer)
	fmt.Fprintf(w, "version\t%s (%.1f)\n", ext.Version, ext.GLVersion)
	fmt.Fprintf(w, "glsl\t%s (%.2f)\n", ext.GLSLVersion, ext.GLSLLanguageVersion)
	fmt.Fprintf(w, "es\t%t\n", ext.IsGLES)
	fmt.Fprintf(w, "core profile\t%t\n", ext.IsCoreProfile)
	fmt.Fprintln(w)

	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"fixed function", ext.IsFixedFunctionSupported},
		{"multitexture", ext.IsMultiTextureSupported},
		{"cube map textures", ext.IsTextureCubeMapSupported},
		{"3D textures", ext.IsTexture3DSupported},
		{"rectangle textures", ext.IsTextureRectangleSupported},
		{"blend func separate", ext.IsBlendFuncSeparateSupported},
		{"blend equation", ext.IsBlendEquationSupported},
		{"blend equation separate", ext.IsBlendEquationSeparateSupported},
		{"blend color", ext.IsBlendColorSupported},
		{"blend min/max", ext.IsBlendMinMaxSupported},
		{"GLSL", ext.IsGLSLSupported},
		{"buffer objects", ext.IsBufferObjectSupported},
		{"vertex array objects", ext.IsVertexArrayObjectSupported},
		{"instanced arrays", ext.IsInstancedArraysSupported},
		{"SPIR-V", ext.IsSPIRVSupported},
		{"debug labels", ext.IsDebugLabelSupported},
		{"depth clamp", ext.IsDepthClampSupported},
		{"sRGB framebuffer", ext.IsSRGBFramebufferSupported},
		{"primitive restart", ext.IsPrimitiveRestartSupported},
		{"point sprites", ext.IsPointSpriteSupported},
	} {
		fmt.Fprintf(w, "%s\t%s\n", f.name, yesNo(f.ok))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "texture units\t%d\n", ext.MaxTextureUnits)
	fmt.Fprintf(w, "texture coords\t%d\n", ext.MaxTextureCoords)
	fmt.Fprintf(w, "vertex attribs\t%d\n", ext.MaxVertexAttribs)
	fmt.Fprintf(w, "extensions\t%d\n", ext.Count())
	if err := w.Flush(); err != nil {
		return err
	}

	if listExtensions {
		names := ext.Supported()
		slices.Sort(names)
		fmt.Fprintln(out)
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
	}
	return nil
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
