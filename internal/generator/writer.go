package generator

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WritePlan writes a sequence plan to a YAML file, for inspecting what the
// renderers were given.
func WritePlan(plan Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlan reads a previously written plan back from a YAML file.
func ReadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}
