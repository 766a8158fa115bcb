package catalog

import (
	"encoding/json"
	"os"
)

// Website is a recommended external learning site shown on the home page
type Website struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// LoadWebsites reads the recommended site list from a JSON file. It is
// called per request so the list can be edited without a restart.
func LoadWebsites(path string) ([]Website, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var websites []Website
	if err := json.Unmarshal(data, &websites); err != nil {
		return nil, err
	}
	return websites, nil
}
