package media

import (
	"context"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/greenkart/greenkart-api/pkg/apperr"
)

// Cloudinary wraps the media host used for product and category images.
type Cloudinary struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string

	cld *cloudinary.Cloudinary
}

func New(cloudName, apiKey, apiSecret, uploadFolder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{
		CloudName:    cloudName,
		APIKey:       apiKey,
		APISecret:    apiSecret,
		UploadFolder: uploadFolder,
		cld:          cld,
	}, nil
}

func (c *Cloudinary) configured() bool {
	return c != nil && c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type UploadResult struct {
	PublicID  string `json:"publicId"`
	URL       string `json:"url"`
	SecureURL string `json:"secureUrl"`
	Bytes     int    `json:"bytes"`
	Format    string `json:"format,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// UploadMany streams each file to the media host and returns the stored
// asset descriptors. folder overrides the configured default when non-empty.
func (c *Cloudinary) UploadMany(ctx context.Context, files []*multipart.FileHeader, folder string) ([]UploadResult, error) {
	if !c.configured() {
		return nil, apperr.Internal("media provider is not configured")
	}
	if len(files) == 0 {
		return nil, apperr.BadRequest("No files provided for upload")
	}
	if folder == "" {
		folder = c.UploadFolder
	}

	out := make([]UploadResult, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.BadRequest("File buffer missing or empty")
		}
		res, err := c.cld.Upload.Upload(ctx, f, uploader.UploadParams{
			Folder:       folder,
			ResourceType: "image",
		})
		_ = f.Close()
		if err != nil {
			return nil, apperr.Internal("Cloudinary upload failed")
		}
		out = append(out, UploadResult{
			PublicID:  res.PublicID,
			URL:       res.URL,
			SecureURL: res.SecureURL,
			Bytes:     res.Bytes,
			Format:    res.Format,
			Width:     res.Width,
			Height:    res.Height,
		})
	}
	return out, nil
}

type DeleteResult struct {
	PublicID string `json:"publicId"`
	Status   string `json:"status"` // deleted | failed
	Detail   string `json:"detail,omitempty"`
}

// DeleteOne destroys a single asset. Returns "deleted" or "not_found".
func (c *Cloudinary) DeleteOne(ctx context.Context, publicID string) (string, error) {
	if publicID == "" {
		return "", apperr.BadRequest("publicId is required to delete an asset")
	}
	if !c.configured() {
		return "", apperr.Internal("media provider is not configured")
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", apperr.Internal("Failed to delete asset " + publicID)
	}
	switch res.Result {
	case "ok":
		return "deleted", nil
	case "not found":
		return "not_found", nil
	default:
		return "", apperr.Internal("Failed to delete asset " + publicID)
	}
}

// DeleteMany destroys assets one by one and reports per-id outcomes.
// Duplicate and empty ids are dropped first.
func (c *Cloudinary) DeleteMany(ctx context.Context, publicIDs []string) ([]DeleteResult, error) {
	seen := make(map[string]bool, len(publicIDs))
	unique := make([]string, 0, len(publicIDs))
	for _, id := range publicIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, apperr.BadRequest("At least one valid publicId must be provided")
	}

	out := make([]DeleteResult, 0, len(unique))
	for _, id := range unique {
		detail, err := c.DeleteOne(ctx, id)
		if err != nil {
			out = append(out, DeleteResult{PublicID: id, Status: "failed", Detail: err.Error()})
			continue
		}
		out = append(out, DeleteResult{PublicID: id, Status: "deleted", Detail: detail})
	}
	return out, nil
}

type SignedUploadRequest struct {
	Folder       string `json:"folder"`
	PublicID     string `json:"publicId"`
	UploadPreset string `json:"uploadPreset"`
	ResourceType string `json:"resourceType"`
}

type SignedUploadPayload struct {
	UploadURL    string            `json:"uploadUrl"`
	CloudName    string            `json:"cloudName"`
	ResourceType string            `json:"resourceType"`
	ExpiresAt    int64             `json:"expiresAt"`
	Fields       map[string]string `json:"fields"`
}

// signatureValidity mirrors how long Cloudinary accepts a signed timestamp.
const signatureValidity = time.Hour

// BuildSignedUploadPayload produces the fields a client posts directly to the
// media host. The signature covers exactly the non-empty optional parameters
// plus the timestamp.
func (c *Cloudinary) BuildSignedUploadPayload(req SignedUploadRequest) (*SignedUploadPayload, error) {
	if !c.configured() {
		return nil, apperr.Internal("media provider is not configured")
	}
	resourceType := req.ResourceType
	if resourceType == "" {
		resourceType = "image"
	}
	ts := time.Now().Unix()

	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(ts, 10))
	if req.Folder != "" {
		params.Set("folder", req.Folder)
	}
	if req.PublicID != "" {
		params.Set("public_id", req.PublicID)
	}
	if req.UploadPreset != "" {
		params.Set("upload_preset", req.UploadPreset)
	}

	signature, err := api.SignParameters(params, c.APISecret)
	if err != nil {
		return nil, apperr.Internal("Failed to sign upload parameters")
	}

	fields := map[string]string{
		"api_key":   c.APIKey,
		"timestamp": strconv.FormatInt(ts, 10),
		"signature": signature,
	}
	if req.Folder != "" {
		fields["folder"] = req.Folder
	}
	if req.PublicID != "" {
		fields["public_id"] = req.PublicID
	}
	if req.UploadPreset != "" {
		fields["upload_preset"] = req.UploadPreset
	}

	return &SignedUploadPayload{
		UploadURL:    "https://api.cloudinary.com/v1_1/" + c.CloudName + "/" + resourceType + "/upload",
		CloudName:    c.CloudName,
		ResourceType: resourceType,
		ExpiresAt:    ts + int64(signatureValidity.Seconds()),
		Fields:       fields,
	}, nil
}
