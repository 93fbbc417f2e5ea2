package audio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ----- Preset ----- //

//   <dir>/_list.json   { "items": [{ "name": "..." }] }
//   <dir>/<name>.json  engine params

type presetMetaJSON struct {
	Name string `json:"name"`
}
type presetMetaListJSON struct {
	Items []presetMetaJSON `json:"items"`
}

type presetManager struct {
	dir   string
	names []string
}

func newPresetManager(dir string) *presetManager {
	return &presetManager{
		dir: dir,
	}
}

func (pm *presetManager) getList() ([]string, error) {
	if pm.names == nil {
		if err := pm.loadList(); err != nil {
			return nil, err
		}
	}
	return pm.names, nil
}

func (pm *presetManager) applyTo(name string, e *Engine) error {
	names, err := pm.getList()
	if err != nil {
		return err
	}
	found := false
	for _, n := range names {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: preset %q not listed", ErrInvalidArgument, name)
	}
	bytes, err := pm.readFile(name + ".json")
	if err != nil {
		return err
	}
	return e.ApplyJSON(bytes)
}

func (pm *presetManager) loadList() error {
	bytes, err := pm.readFile("_list.json")
	if err != nil {
		return err
	}
	var list presetMetaListJSON
	if err := json.Unmarshal(bytes, &list); err != nil {
		return err
	}
	names := make([]string, len(list.Items))
	for i, item := range list.Items {
		names[i] = item.Name
	}
	pm.names = names
	return nil
}

func (pm *presetManager) readFile(name string) ([]byte, error) {
	dir, err := expandPath(pm.dir)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, name))
}
