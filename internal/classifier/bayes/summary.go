package bayes

func (m *Model) Summary() map[string]interface{} {
	priors := make(map[string]interface{}, len(m.priors))
	for class, p := range m.priors {
		priors[class] = p
	}

	likelihoods := make(map[string]interface{}, len(m.tables))
	for class, features := range m.tables {
		perFeature := make(map[string]interface{}, len(features))
		for name, table := range features {
			values := make(map[string]interface{}, len(table))
			for value, l := range table {
				values[value] = l
			}
			perFeature[name] = values
		}
		likelihoods[class] = perFeature
	}

	summaries := make(map[string]interface{}, len(m.numerics))
	for class, features := range m.numerics {
		perFeature := make(map[string]interface{}, len(features))
		for name, g := range features {
			perFeature[name] = map[string]interface{}{
				"mean": g.mean,
				"std":  g.std,
			}
		}
		summaries[class] = perFeature
	}

	return map[string]interface{}{
		"priors":              priors,
		"likelihoods":         likelihoods,
		"numerical_summaries": summaries,
	}
}
