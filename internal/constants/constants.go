package constants

// Rack capacity
const (
	MaxU = 42
)

// Physical cabinet dimensions (millimeters)
const (
	CabinetWidthMM  = 800.0
	CabinetDepthMM  = 1000.0
	CabinetHeightMM = 2000.0
	UHeightMM       = CabinetHeightMM / MaxU
)

// Elevation view (single cabinet, front/rear)
const (
	UHeightPx          = 12.0
	ElevationWidthPx   = 150.0
	ElevationHeightPx  = MaxU * UHeightPx
	ElevationLabelStep = 5
)

// Floor plan (top-down designer)
const (
	GridCellPx       = 20.0
	FootprintDivisor = 10.0
	FootprintWidthPx = CabinetWidthMM / FootprintDivisor
	FootprintDepthPx = CabinetDepthMM / FootprintDivisor
	AreaWidthPx      = 2000.0
	AreaHeightPx     = 1500.0
)

// 3D world space
const (
	WorldScale       = 0.001
	DeviceWidthRatio = 0.98
	DeviceDepthRatio = 0.9
	FloorPxToWorld   = FootprintDivisor * WorldScale
)

// Default placement
const (
	DefaultStartX          = 40.0
	DefaultStartY          = 40.0
	DefaultAdjacentSpacing = 20.0
	DefaultCorridorSpacing = 40.0
	DefaultCabinetsPerRow  = 5
)

// Import sheet conventions
const (
	LocationSheetName  = "Location"
	GroupColumnHeader  = "Corridor"
	StartUColumn       = "Rack"
	USizeColumn        = "U"
	FaceColumn         = "Face"
	DefaultActiveTab   = "design"
	DefaultWorkbookExt = ".xlsx"
)

// Drag payload keys
const (
	PayloadCabinetID = "cabinetId"
	PayloadOffsetX   = "offsetX"
	PayloadOffsetY   = "offsetY"
)

// BrandModelColumns lists the label headers in priority order
var BrandModelColumns = []string{
	"BrandModel",
	"Brand/model",
	"Brand_model",
}

// RearFaceTokens are the lower-cased face values that mean "rear"
var RearFaceTokens = []string{
	"rear",
	"back",
	"arka",
}

// Face colours (6-char hex, no #)
var FaceColorMap = map[string]string{
	"front": "7dd3fc",
	"rear":  "fcd34d",
}
