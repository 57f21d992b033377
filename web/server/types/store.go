package types

import "net/http"

type StoreGetResponse struct {
	*Response
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

type StoreSetRequest struct {
	Value *string `json:"value"`
}

func (req *StoreSetRequest) Bind(*http.Request) error {
	if req.Value == nil {
		return errMissing("value")
	}
	return nil
}

type StoreKeysResponse struct {
	*Response
	Data map[string][]string `json:"keys"`
}
