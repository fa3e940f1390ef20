package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mintara/auction-house/internal/entity"
	"go.uber.org/zap"
)

var (
	ErrProofRejected = errors.New("proof rejected by asset registry")
)

type client struct {
	http    *retryablehttp.Client
	baseUrl string
}

func NewClient(http *retryablehttp.Client, baseUrl string) AssetRegistry {
	return client{http, baseUrl}
}

type delegateRequest struct {
	Asset       string       `json:"asset"`
	Owner       string       `json:"owner"`
	NewDelegate string       `json:"newDelegate"`
	Proof       entity.Proof `json:"proof"`
}

type transferRequest struct {
	Asset    string       `json:"asset"`
	Delegate string       `json:"delegate"`
	NewOwner string       `json:"newOwner"`
	Proof    entity.Proof `json:"proof"`
}

func (c client) Delegate(asset, owner, newDelegate string, proof entity.Proof) error {
	body := delegateRequest{Asset: asset, Owner: owner, NewDelegate: newDelegate, Proof: proof}
	if err := c.post("/delegate", body); err != nil {
		zap.L().With(zap.String("asset", asset), zap.Error(err)).Error("Registry: Delegate failed")
		return err
	}

	return nil
}

func (c client) Transfer(asset, delegate, newOwner string, proof entity.Proof) error {
	body := transferRequest{Asset: asset, Delegate: delegate, NewOwner: newOwner, Proof: proof}
	if err := c.post("/transfer", body); err != nil {
		zap.L().With(zap.String("asset", asset), zap.Error(err)).Error("Registry: Transfer failed")
		return err
	}

	return nil
}

func (c client) post(path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.http.Post(fmt.Sprintf("%s%s", c.baseUrl, path), "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 422 {
		return ErrProofRejected
	}
	if resp.StatusCode != 200 {
		return errors.New(resp.Status)
	}

	return nil
}
