package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseMultipartListingRequest_PicksLastPriceValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("title", "Submariner Date")
	_ = writer.WriteField("brand", "Rolex")
	_ = writer.WriteField("price", "100")
	_ = writer.WriteField("price", "45900")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/user/listings", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	parsed, err := parseMultipartListingRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartListingRequest returned error: %v", err)
	}
	if !parsed.TitleSet || parsed.Title != "Submariner Date" {
		t.Fatalf("expected title set, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 45900 {
		t.Fatalf("expected price=45900, got %+v", parsed)
	}
}

func TestParseMultipartListingRequest_RejectsBadPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("price", "not-a-number")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/user/listings", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	if _, err := parseMultipartListingRequest(c); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestSafeDeleteUpload_RejectsOutsideUploads(t *testing.T) {
	if err := safeDeleteUpload("../etc/passwd"); err == nil {
		t.Fatal("expected traversal path to be rejected")
	}
	if err := safeDeleteUpload("index.html"); err == nil {
		t.Fatal("expected non-upload path to be rejected")
	}
	if err := safeDeleteUpload(""); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}
	if err := safeDeleteUpload("https://cdn.example.com/watch.jpg"); err != nil {
		t.Fatalf("external URL should be a no-op, got %v", err)
	}
}
