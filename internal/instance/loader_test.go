package instance_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/instance"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

const twoJobShop = `<?xml version="1.0"?>
<SPInstance type="FORPFSSPSD">
  <jobs count="2"/>
  <flowVector>
    <component index="0" value="0" job="0"/>
    <component index="1" value="0" job="0"/>
    <component index="0" value="0" job="1"/>
    <component index="1" value="0" job="1"/>
  </flowVector>
  <processingTimes default="10">
    <p j="0" op="0" value="15"/>
  </processingTimes>
  <sizes default="1"/>
  <setupTimes default="5"/>
  <relativeDueDatesIndep>
    <d j1="0" op1="1" j2="0" op2="0" value="200"/>
    <d j1="1" op1="1" j2="1" op2="0" value="200"/>
  </relativeDueDatesIndep>
  <jobPlexity>
    <t j="0" Type="Duplex" id="0"/>
  </jobPlexity>
</SPInstance>`

func writeTempXML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadShopBuildsGraphedInstance(t *testing.T) {
	path := writeTempXML(t, twoJobShop)
	inst, warnings, err := instance.LoadShop(path, problem.ShopFixedOrder)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.NotNil(t, inst.Graph())

	ops, err := inst.JobOperations(0)
	require.NoError(t, err)
	require.Len(t, ops, 2)
}

func TestLoadShopRejectsEmptyFlowVector(t *testing.T) {
	path := writeTempXML(t, `<SPInstance type="FORPFSSPSD"><jobs count="0"/><flowVector/><processingTimes default="1"/><sizes default="1"/></SPInstance>`)
	_, _, err := instance.LoadShop(path, problem.ShopFixedOrder)
	require.ErrorIs(t, err, instance.ErrNoJobs)
}

func TestParseShopType(t *testing.T) {
	for _, name := range []string{"", "fixedorder", "flow"} {
		got, err := instance.ParseShopType(name)
		require.NoError(t, err)
		require.Equal(t, problem.ShopFixedOrder, got)
	}
	got, err := instance.ParseShopType("job")
	require.NoError(t, err)
	require.Equal(t, problem.ShopJobShop, got)

	_, err = instance.ParseShopType("bogus")
	require.ErrorIs(t, err, instance.ErrUnknownShopType)
}

func TestLoadMaintenancePolicy(t *testing.T) {
	path := writeTempXML(t, `<maintPolicy>
  <numberOfTypes value="2"/>
  <minimumIdle value="100"/>
  <maintProcTimes default="50">
    <t id="0" value="60"/>
  </maintProcTimes>
  <thresholds defaultMin="10" defaultMax="500">
    <t id="0" min="5" max="400"/>
  </thresholds>
</maintPolicy>`)
	policy, err := instance.LoadMaintenancePolicy(path)
	require.NoError(t, err)
	require.Equal(t, uint(2), policy.NumberOfTypes())
	require.Equal(t, problem.Delay(100), policy.MinimumIdle())
	require.Equal(t, problem.Delay(60), policy.Duration(0))
	require.Equal(t, problem.Delay(50), policy.Duration(1))
	min, max := policy.Thresholds(0)
	require.Equal(t, problem.Delay(5), min)
	require.Equal(t, problem.Delay(400), max)
}

const twoModuleLine = `<?xml version="1.0"?>
<modular>
  <modules>
    <module id="0">
      <SPInstance type="FORPFSSPSD">
        <jobs count="1"/>
        <flowVector>
          <component index="0" value="0" job="0"/>
        </flowVector>
        <processingTimes default="10"/>
        <sizes default="1"/>
      </SPInstance>
    </module>
    <module id="1">
      <SPInstance type="FORPFSSPSD">
        <jobs count="1"/>
        <flowVector>
          <component index="0" value="0" job="0"/>
        </flowVector>
        <processingTimes default="10"/>
        <sizes default="1"/>
      </SPInstance>
    </module>
  </modules>
  <transferPoints>
    <transferPoint upstream="0" downstream="1">
      <setup j="0" value="5"/>
    </transferPoint>
  </transferPoints>
</modular>`

func TestLoadModularBuildsProductionLine(t *testing.T) {
	path := writeTempXML(t, twoModuleLine)
	pl, warnings, err := instance.LoadModular(path, problem.ShopFixedOrder)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, pl.Modules(), 2)

	boundary, ok := pl.BoundaryAfter(0)
	require.True(t, ok)
	require.Equal(t, problem.Delay(5), boundary.Transfer.SetupTime[0])
}

func TestDetectKind(t *testing.T) {
	shopPath := writeTempXML(t, twoJobShop)
	kind, err := instance.DetectKind(shopPath)
	require.NoError(t, err)
	require.Equal(t, instance.KindShop, kind)

	modularPath := writeTempXML(t, twoModuleLine)
	kind, err = instance.DetectKind(modularPath)
	require.NoError(t, err)
	require.Equal(t, instance.KindModular, kind)

	_, err = instance.DetectKind(writeTempXML(t, `<bogus/>`))
	require.ErrorIs(t, err, instance.ErrUnknownFileType)
}
