package graphics

import "strings"

// OpenGL enum values used by pipeline states and samplers. They match the
// values in the GL headers so the GL backend can pass them through unchanged.
const (
	Zero uint32 = 0
	One  uint32 = 1

	TextureTarget2D uint32 = 0x0DE1

	CapCullFace  uint32 = 0x0B44
	CapDepthTest uint32 = 0x0B71
	CapBlend     uint32 = 0x0BE2

	Front        uint32 = 0x0404
	Back         uint32 = 0x0405
	FrontAndBack uint32 = 0x0408
	CW           uint32 = 0x0900
	CCW          uint32 = 0x0901

	Never    uint32 = 0x0200
	Less     uint32 = 0x0201
	Equal    uint32 = 0x0202
	LEqual   uint32 = 0x0203
	Greater  uint32 = 0x0204
	NotEqual uint32 = 0x0205
	GEqual   uint32 = 0x0206
	Always   uint32 = 0x0207

	FuncAdd             uint32 = 0x8006
	Min                 uint32 = 0x8007
	Max                 uint32 = 0x8008
	FuncSubtract        uint32 = 0x800A
	FuncReverseSubtract uint32 = 0x800B

	SrcColor              uint32 = 0x0300
	OneMinusSrcColor      uint32 = 0x0301
	SrcAlpha              uint32 = 0x0302
	OneMinusSrcAlpha      uint32 = 0x0303
	DstAlpha              uint32 = 0x0304
	OneMinusDstAlpha      uint32 = 0x0305
	DstColor              uint32 = 0x0306
	OneMinusDstColor      uint32 = 0x0307
	SrcAlphaSaturate      uint32 = 0x0308
	ConstantColor         uint32 = 0x8001
	OneMinusConstantColor uint32 = 0x8002
	ConstantAlpha         uint32 = 0x8003
	OneMinusConstantAlpha uint32 = 0x8004

	TextureMagFilter     uint32 = 0x2800
	TextureMinFilter     uint32 = 0x2801
	TextureWrapS         uint32 = 0x2802
	TextureWrapT         uint32 = 0x2803
	TextureBorderColor   uint32 = 0x1004
	TextureMaxAnisotropy uint32 = 0x84FE

	Nearest              uint32 = 0x2600
	Linear               uint32 = 0x2601
	NearestMipmapNearest uint32 = 0x2700
	LinearMipmapNearest  uint32 = 0x2701
	NearestMipmapLinear  uint32 = 0x2702
	LinearMipmapLinear   uint32 = 0x2703

	Repeat         uint32 = 0x2901
	ClampToBorder  uint32 = 0x812D
	ClampToEdge    uint32 = 0x812F
	MirroredRepeat uint32 = 0x8370
)

var enumNames = map[string]uint32{
	"ZERO":                     Zero,
	"ONE":                      One,
	"FRONT":                    Front,
	"BACK":                     Back,
	"FRONT_AND_BACK":           FrontAndBack,
	"CW":                       CW,
	"CCW":                      CCW,
	"NEVER":                    Never,
	"LESS":                     Less,
	"EQUAL":                    Equal,
	"LEQUAL":                   LEqual,
	"GREATER":                  Greater,
	"NOTEQUAL":                 NotEqual,
	"GEQUAL":                   GEqual,
	"ALWAYS":                   Always,
	"FUNC_ADD":                 FuncAdd,
	"FUNC_SUBTRACT":            FuncSubtract,
	"FUNC_REVERSE_SUBTRACT":    FuncReverseSubtract,
	"MIN":                      Min,
	"MAX":                      Max,
	"SRC_COLOR":                SrcColor,
	"ONE_MINUS_SRC_COLOR":      OneMinusSrcColor,
	"SRC_ALPHA":                SrcAlpha,
	"ONE_MINUS_SRC_ALPHA":      OneMinusSrcAlpha,
	"DST_ALPHA":                DstAlpha,
	"ONE_MINUS_DST_ALPHA":      OneMinusDstAlpha,
	"DST_COLOR":                DstColor,
	"ONE_MINUS_DST_COLOR":      OneMinusDstColor,
	"SRC_ALPHA_SATURATE":       SrcAlphaSaturate,
	"CONSTANT_COLOR":           ConstantColor,
	"ONE_MINUS_CONSTANT_COLOR": OneMinusConstantColor,
	"CONSTANT_ALPHA":           ConstantAlpha,
	"ONE_MINUS_CONSTANT_ALPHA": OneMinusConstantAlpha,
	"NEAREST":                  Nearest,
	"LINEAR":                   Linear,
	"NEAREST_MIPMAP_NEAREST":   NearestMipmapNearest,
	"LINEAR_MIPMAP_NEAREST":    LinearMipmapNearest,
	"NEAREST_MIPMAP_LINEAR":    NearestMipmapLinear,
	"LINEAR_MIPMAP_LINEAR":     LinearMipmapLinear,
	"REPEAT":                   Repeat,
	"CLAMP_TO_BORDER":          ClampToBorder,
	"CLAMP_TO_EDGE":            ClampToEdge,
	"MIRRORED_REPEAT":          MirroredRepeat,
}

// ParseEnum maps a GL enum name as written in scene files ("GL_BACK" or
// "BACK", any case) to its value.
func ParseEnum(name string) (uint32, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "GL_")
	v, ok := enumNames[name]
	return v, ok
}
