package classifier

type AlgType string

const (
	AlgTypeC45   AlgType = "C45"
	AlgTypeCHAID AlgType = "CHAID"
	AlgTypeBayes AlgType = "NAIVE_BAYES"
	AlgTypeKNN   AlgType = "KNN"
)

type Config struct {
	Type AlgType `envconfig:"GROVE_CLASSIFIER_TYPE" default:"C45"`
}

func (c Config) ClassifierType() AlgType {
	return c.Type
}
