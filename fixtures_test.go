package openft

import (
	"image"
	"image/color"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const farmsManifest = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plug-in SYSTEM "http://www.kohsuke.org/freetrain/plugin.dtd">
<plug-in>
	<title>Farms</title>
	<author>  oscar  </author>
	<homepage>http://example.com/farms</homepage>

	<contribution type="picture" id="farm-pic">
		<picture src="farm.bmp"/>
	</contribution>

	<contribution type="GenericStructure" id="farm-1">
		<name>Small farm</name>
		<size>2,3</size>
		<sprite origin="10,20" offset="4">
			<picture ref="farm-pic"/>
		</sprite>
	</contribution>
</plug-in>
`

const towersManifest = `<?xml version="1.0" encoding="UTF-8"?>
<plug-in>
	<title>Towers</title>
	<author>oscar</author>

	<contribution type="picture" id="tower-pic">
		<picture src="images/tower.png"/>
	</contribution>

	<contribution type="GenericStructure" id="tower">
		<name>Tower</name>
		<size>1,1</size>
		<height>3</height>
		<spriteType name="hueTransform">
			<map from="*,0,0" to="255,128,0"/>
		</spriteType>
		<spriteType name="hueTransform">
			<map from="blue" to="0,0,255"/>
		</spriteType>
		<pictures>
			<top origin="0,0" offset="16"><picture ref="tower-pic"/></top>
			<middle origin="32,0" offset="8"><picture ref="tower-pic"/></middle>
			<bottom origin="64,0" offset="0"><picture ref="tower-pic"/></bottom>
		</pictures>
	</contribution>

	<contribution type="road" id="dirt-road">
		<picture src="road.png" offset="2"/>
	</contribution>
</plug-in>
`

func init() {
	// keep test output readable
	SetLogger(log.New(ioutil.Discard, "", 0))
}

// fakeDecoder hands back blank images & counts decodes per path
type fakeDecoder struct {
	mu    sync.Mutex
	calls map[string]int
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{calls: map[string]int{}}
}

func (f *fakeDecoder) Decode(path string) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	return image.NewNRGBA(image.Rect(0, 0, 128, 128)), nil
}

func (f *fakeDecoder) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// writeFile writes `data` to root/name creating directories as needed
func writeFile(t *testing.T, root, name string, data []byte) string {
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, data, 0644))
	return path
}

// solid returns a w x h image filled with `c`
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// mustParse parses a manifest that is expected to be valid
func mustParse(t *testing.T, manifest string) *Package {
	pkg, err := ParsePackage("plugins/test", []byte(manifest))
	require.NoError(t, err)
	require.NotNil(t, pkg)
	return pkg
}
