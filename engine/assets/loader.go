package assets

import "github.com/spaghettifunk/corridor/engine/renderer/metadata"

type Loader interface {
	Load(path string, params interface{}) (*metadata.Resource, error) // `interface{}` here allows loaders to take their own parameter types
	Unload(*metadata.Resource) error
}
