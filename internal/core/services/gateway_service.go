package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lexcase/internal/config"
	"lexcase/internal/core/domain"

	"go.uber.org/zap"
)

const (
	gatewaySandboxURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	gatewayLiveURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// GatewayService talks to the SSLCommerz hosted checkout. Initiation
// posts the session request and returns the redirect URL the client
// is sent to, everything after that arrives through callbacks.
type GatewayService struct {
	storeID    string
	storePass  string
	endpoint   string
	httpClient *http.Client
}

// NewGatewayService creates a new gateway service
func NewGatewayService(cfg config.GatewayConfig) *GatewayService {
	endpoint := gatewayLiveURL
	if cfg.IsSandbox {
		endpoint = gatewaySandboxURL
	}
	return &GatewayService{
		storeID:   cfg.StoreID,
		storePass: cfg.StorePass,
		endpoint:  endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GatewayRequest carries everything the checkout session needs
type GatewayRequest struct {
	Amount        float64
	TransactionID string
	SuccessURL    string
	FailURL       string
	CancelURL     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ProductName   string
	CaseID        string // echoed back as value_a
	Stage         string // echoed back as value_b
}

type gatewayResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// Initiate opens a checkout session and returns the redirect URL
func (s *GatewayService) Initiate(ctx context.Context, req GatewayRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", s.storeID)
	form.Set("store_passwd", s.storePass)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", "BDT")
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("cus_add1", "N/A")
	form.Set("cus_city", "N/A")
	form.Set("cus_country", "Bangladesh")
	form.Set("shipping_method", "NO")
	form.Set("product_name", req.ProductName)
	form.Set("product_category", "LegalService")
	form.Set("product_profile", "general")
	form.Set("value_a", req.CaseID)
	form.Set("value_b", req.Stage)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		zap.S().Errorw("gateway request failed", "tran_id", req.TransactionID, "error", err)
		return "", domain.ErrGatewayFailure
	}
	defer resp.Body.Close()

	var parsed gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		zap.S().Errorw("gateway returned malformed response", "tran_id", req.TransactionID, "error", err)
		return "", domain.ErrGatewayFailure
	}

	if !strings.EqualFold(parsed.Status, "SUCCESS") || parsed.GatewayPageURL == "" {
		zap.S().Warnw("gateway declined session",
			"tran_id", req.TransactionID,
			"status", parsed.Status,
			"reason", parsed.FailedReason,
		)
		return "", domain.ErrGatewayFailure
	}

	return parsed.GatewayPageURL, nil
}
