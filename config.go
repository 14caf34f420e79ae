package rastab

const (
	// 表格列名（外部契约，按名称精确匹配）
	CSV_COL_LONGITUDE  = "longitude"
	CSV_COL_LATITUDE   = "latitude"
	CSV_COL_RED        = "red"
	CSV_COL_GREEN      = "green"
	CSV_COL_BLUE       = "blue"
	CSV_COL_NIR        = "nir"
	CSV_COL_GRAY       = "gray"
	CSV_COL_NDWI       = "ndwi"
	CSV_COL_NDVI       = "ndvi"
	CSV_COL_NDWI_255   = "ndwi_255"
	CSV_COL_NDVI_255   = "ndvi_255"
	CSV_COL_WATER_MASK = "water_mask"

	// 光度编码参数默认值
	DEFAULT_CLIP_MIN = 0.005
	DEFAULT_CLIP_MAX = 0.3
	DEFAULT_GAMMA    = 2.2

	REFLECTANCE_SCALE = 10000.0
	REFLECTANCE_MAX   = 10000
	DISPLAY_MAX       = 255

	// 归一化指数计算参数
	INDEX_EPSILON = 1e-10
	INDEX_MIN     = -1.0
	INDEX_MAX     = 1.0

	// 灰度转换权重（ITU-R BT.601）
	GRAY_WEIGHT_RED   = 0.299
	GRAY_WEIGHT_GREEN = 0.587
	GRAY_WEIGHT_BLUE  = 0.114

	// 波段逻辑顺序固定为红、绿、蓝、近红外
	EXPECTED_BAND_COUNT = 4
	BANDS_RGB           = "rgb"
	BANDS_RGBN          = "rgbn"

	DEFAULT_CRS    = "EPSG:4326"
	UNIVERSAL_SRID = 4326

	// 单轴仅一个坐标时的退化分辨率
	DEFAULT_RESOLUTION = 0.0001

	COMPRESS_OPTION   = "COMPRESS=LZW"
	PROGRESS_INTERVAL = 10000

	BAND_DESC_RED   = "Red (B4)"
	BAND_DESC_GREEN = "Green (B3)"
	BAND_DESC_BLUE  = "Blue (B2)"
	BAND_DESC_NIR   = "NIR (B8)"

	BAND_DESC_RED_RGB   = "Red (0-255)"
	BAND_DESC_GREEN_RGB = "Green (0-255)"
	BAND_DESC_BLUE_RGB  = "Blue (0-255)"
	BAND_DESC_NIR_RGB   = "NIR (0-255)"

	CLIPPED_SUFFIX       = "_clipped.tif"
	RGB_CONVERTED_SUFFIX = "_rgb_converted.tif"

	FILE_EXT_TIF  = ".tif"
	FILE_EXT_TIFF = ".tiff"
	FILE_EXT_PNG  = ".png"
	FILE_EXT_JPG  = ".jpg"
	FILE_EXT_JPEG = ".jpeg"

	ErrColumnMissingTemplate = `表格中缺失【%s】列`

	TMP_TIF = "img_%s.tif"
)

var (
	// 默认波段顺序（Sentinel-2命名），逻辑映射固定，不可配置调换
	DEFAULT_BAND_ORDER = [EXPECTED_BAND_COUNT]string{"B4", "B3", "B2", "B8"}

	// 指数计算后表格的规范列序，water_mask固定为最后一列
	CANONICAL_COLUMNS = []string{
		CSV_COL_LONGITUDE, CSV_COL_LATITUDE,
		CSV_COL_RED, CSV_COL_GREEN, CSV_COL_BLUE, CSV_COL_NIR,
		CSV_COL_GRAY, CSV_COL_NDWI, CSV_COL_NDVI,
		CSV_COL_NDWI_255, CSV_COL_NDVI_255, CSV_COL_WATER_MASK,
	}
)
