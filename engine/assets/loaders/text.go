package loaders

import (
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

type TextLoader struct{}

func (tl *TextLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	buf, err := readAsset(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeText,
		Name:     resourceName(path),
		FullPath: path,
		DataSize: uint64(len(buf)),
		Data:     string(buf),
	}, nil
}

func (tl *TextLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}
