package structview

import "strings"

type jsonTag struct {
	Name      string
	OmitEmpty bool
	Explicit  bool
	Transient bool
}

func parseJSONTag(defaultName string, raw string) jsonTag {
	if raw == "" {
		return jsonTag{Name: defaultName}
	}
	parts := strings.Split(raw, ",")
	name := parts[0]
	explicit := name != ""
	if name == "" {
		name = defaultName
	}
	tag := jsonTag{
		Name:      name,
		Explicit:  explicit,
		Transient: name == "-",
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			tag.OmitEmpty = true
			break
		}
	}
	return tag
}
