package blogsync

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func tagsJSON(tags []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
