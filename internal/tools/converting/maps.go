package converting

// ConvertMap turns header-like maps into plain JSON-friendly maps.
func ConvertMap(originalMap map[string][]string) map[string]any {
	convertedMap := make(map[string]any, len(originalMap))

	for key, values := range originalMap {
		convertedMap[key] = values
	}

	return convertedMap
}
