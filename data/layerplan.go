package data

// PlanLayers implements the Layer Planner stage of spec.md §4.2: layer 0
// slices at firstLayerHeight, layer i>0 at firstLayerHeight + i*layerHeight,
// for ceil((zMax - firstLayerHeight) / layerHeight) + 1 layers, so the last
// elevation reaches or passes zMax; at least one layer is always returned.
// The result is the immutable vector of slice elevations indexed by layer
// number.
func PlanLayers(zMax, firstLayerHeight, layerHeight Micrometer) []Micrometer {
	count := 1
	if layerHeight > 0 && zMax > firstLayerHeight {
		remaining := zMax - firstLayerHeight
		// ceil(remaining / layerHeight) + 1
		count = int((remaining+layerHeight-1)/layerHeight) + 1
	}

	elevations := make([]Micrometer, count)
	for i := 0; i < count; i++ {
		elevations[i] = firstLayerHeight + Micrometer(i)*layerHeight
	}
	return elevations
}
