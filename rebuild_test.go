package rastab

import (
	"math"
	"testing"
)

// 3x2点阵表，行序打乱以验证重建与行序无关
func newRebuildTable() *PixelTable {
	t := NewPixelTable(6)
	pts := []struct {
		lon, lat float64
		r        float64
	}{
		{100.02, 49.99, 60},
		{100.00, 50.00, 10},
		{100.01, 50.00, 20},
		{100.02, 50.00, 30},
		{100.00, 49.99, 40},
		{100.01, 49.99, 50},
	}
	for _, p := range pts {
		t.Lon = append(t.Lon, p.lon)
		t.Lat = append(t.Lat, p.lat)
		t.Red = append(t.Red, p.r)
		t.Green = append(t.Green, p.r+1)
		t.Blue = append(t.Blue, p.r+2)
		t.Nir = append(t.Nir, p.r+3)
	}
	return t
}

func TestBuildLattice(t *testing.T) {
	la, err := buildLattice(newRebuildTable())
	if err != nil {
		t.Fatal(err)
	}
	if la.width != 3 || la.height != 2 {
		t.Fatalf("lattice = %dx%d, want 3x2", la.width, la.height)
	}
	if math.Abs(la.lonRes-0.01) > 1e-9 || math.Abs(la.latRes-0.01) > 1e-9 {
		t.Fatalf("resolution = (%v,%v), want (0.01,0.01)", la.lonRes, la.latRes)
	}
	wantGt := [6]float64{99.995, 0.01, 0, 50.005, 0, -0.01}
	for i := range wantGt {
		if math.Abs(la.gt[i]-wantGt[i]) > 1e-9 {
			t.Fatalf("gt = %v, want %v", la.gt, wantGt)
		}
	}
	// 纬度降序：最大纬度在第0行
	if la.latToRow[50.00] != 0 || la.latToRow[49.99] != 1 {
		t.Errorf("latToRow = %v, want max lat at row 0", la.latToRow)
	}
	if la.lonToCol[100.00] != 0 || la.lonToCol[100.02] != 2 {
		t.Errorf("lonToCol = %v, want min lon at col 0", la.lonToCol)
	}
}

func TestBuildLatticeSinglePoint(t *testing.T) {
	tab := NewPixelTable(1)
	tab.Lon = append(tab.Lon, 116.4)
	tab.Lat = append(tab.Lat, 39.9)
	tab.Red = append(tab.Red, 1)
	la, err := buildLattice(tab)
	if err != nil {
		t.Fatal(err)
	}
	if la.width != 1 || la.height != 1 {
		t.Fatalf("lattice = %dx%d, want 1x1", la.width, la.height)
	}
	// 单点轴退化为默认分辨率
	if la.lonRes != DEFAULT_RESOLUTION || la.latRes != DEFAULT_RESOLUTION {
		t.Errorf("resolution = (%v,%v), want default %v", la.lonRes, la.latRes, DEFAULT_RESOLUTION)
	}
}

func TestBuildLatticeEmpty(t *testing.T) {
	if _, err := buildLattice(NewPixelTable(0)); err != ErrEmptyTable {
		t.Fatalf("err = %v, want ErrEmptyTable", err)
	}
}

func TestFillGrid(t *testing.T) {
	tab := newRebuildTable()
	la, err := buildLattice(tab)
	if err != nil {
		t.Fatal(err)
	}
	grids, filled := fillGrid(tab, la, [][]float64{tab.Red}, nil)
	if filled != 6 {
		t.Fatalf("filled = %d, want 6", filled)
	}
	// 行优先：row0为北侧（lat=50.00）
	want := []uint8{10, 20, 30, 40, 50, 60}
	for i := range want {
		if grids[0][i] != want[i] {
			t.Fatalf("grid = %v, want %v", grids[0], want)
		}
	}
}

func TestFillGridLastWriteWins(t *testing.T) {
	tab := newRebuildTable()
	// 重复坐标，后写覆盖先写
	tab.Lon = append(tab.Lon, 100.00)
	tab.Lat = append(tab.Lat, 50.00)
	tab.Red = append(tab.Red, 99)
	tab.Green = append(tab.Green, 99)
	tab.Blue = append(tab.Blue, 99)
	tab.Nir = append(tab.Nir, 99)
	la, err := buildLattice(tab)
	if err != nil {
		t.Fatal(err)
	}
	grids, filled := fillGrid(tab, la, [][]float64{tab.Red}, nil)
	if filled != 7 {
		t.Fatalf("filled = %d, want 7", filled)
	}
	if grids[0][0] != 99 {
		t.Errorf("duplicate coordinate should keep last value, got %d", grids[0][0])
	}
}

func TestFillGridSkipsOffLattice(t *testing.T) {
	tab := newRebuildTable()
	la, err := buildLattice(tab)
	if err != nil {
		t.Fatal(err)
	}
	// 用另一张表向同一点阵填充：点阵外坐标静默跳过
	alien := NewPixelTable(2)
	alien.Lon = append(alien.Lon, 100.00, 123.45)
	alien.Lat = append(alien.Lat, 50.00, 50.00)
	alien.Red = append(alien.Red, 77, 88)
	grids, filled := fillGrid(alien, la, [][]float64{alien.Red}, nil)
	if filled != 1 {
		t.Fatalf("filled = %d, want 1", filled)
	}
	if grids[0][0] != 77 {
		t.Errorf("on-lattice row should land at (0,0), got %d", grids[0][0])
	}
}

func TestFillGridHolesStayZero(t *testing.T) {
	// 非矩形采样：3x2点阵缺一角，空格点保持0
	tab := newRebuildTable()
	tab.Lon = tab.Lon[:5]
	tab.Lat = tab.Lat[:5]
	tab.Red = tab.Red[:5]
	la, err := buildLattice(tab)
	if err != nil {
		t.Fatal(err)
	}
	if la.width != 3 || la.height != 2 {
		t.Fatalf("lattice = %dx%d, want 3x2", la.width, la.height)
	}
	grids, filled := fillGrid(tab, la, [][]float64{tab.Red}, nil)
	if filled != 5 {
		t.Fatalf("filled = %d, want 5", filled)
	}
	zeros := 0
	for _, v := range grids[0] {
		if v == 0 {
			zeros++
		}
	}
	if zeros != 1 {
		t.Errorf("expected exactly 1 hole, grid = %v", grids[0])
	}
}

func TestFillGridProgress(t *testing.T) {
	tab := newRebuildTable()
	la, err := buildLattice(tab)
	if err != nil {
		t.Fatal(err)
	}
	var lastDone, lastTotal int
	fillGrid(tab, la, [][]float64{tab.Red}, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	if lastDone != 6 || lastTotal != 6 {
		t.Errorf("final progress = (%d,%d), want (6,6)", lastDone, lastTotal)
	}
}

func TestTableToRasterWrongBandsMode(t *testing.T) {
	g := NewRasterToolbox(t.TempDir())
	opt := DefaultRebuildOptions()
	opt.Bands = "bgr"
	if err := g.TableToRaster(newRebuildTable(), "unused.tif", opt); err != ErrWrongBandsMode {
		t.Fatalf("err = %v, want ErrWrongBandsMode", err)
	}
}

func TestTableToRasterMissingColumn(t *testing.T) {
	g := NewRasterToolbox(t.TempDir())
	tab := NewPixelTable(1)
	tab.Lon = append(tab.Lon, 100)
	tab.Lat = append(tab.Lat, 50)
	tab.columns = tab.columns[:2] // 仅保留坐标列
	err := g.TableToRaster(tab, "unused.tif", DefaultRebuildOptions())
	if err == nil {
		t.Fatal("expected missing column error")
	}
}
