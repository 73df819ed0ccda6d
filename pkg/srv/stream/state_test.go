/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package stream

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-tof/pkg/ply"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(catalog.Close)
	return catalog
}

func TestCatalogSetGet(t *testing.T) {
	catalog := newTestCatalog(t)

	info := &ply.Info{
		NumPoints: 1000,
		Format:    ply.FormatBinaryLE,
		HasColor:  true,
		MinX:      -1,
		MaxX:      1,
	}
	require.NoError(t, catalog.SetInfo("scene.ply", info))

	got, err := catalog.GetInfo("scene.ply")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, info, got)
}

func TestCatalogGetMissing(t *testing.T) {
	catalog := newTestCatalog(t)

	got, err := catalog.GetInfo("never-loaded.ply")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCatalogOverwrite(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.SetInfo("scene.ply", &ply.Info{NumPoints: 10}))
	require.NoError(t, catalog.SetInfo("scene.ply", &ply.Info{NumPoints: 20}))

	got, err := catalog.GetInfo("scene.ply")
	require.NoError(t, err)
	require.Equal(t, 20, got.NumPoints)
}

func TestCatalogNames(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.SetInfo("a.ply", &ply.Info{NumPoints: 1}))
	require.NoError(t, catalog.SetInfo("b.ply", &ply.Info{NumPoints: 2}))

	names, err := catalog.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"a.ply", "b.ply"}, names)
}
