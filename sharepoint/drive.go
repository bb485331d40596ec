package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// DriveItem describes a file stored in the site document library.
type DriveItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	WebURL      string `json:"webUrl"`
	DownloadURL string `json:"@microsoft.graph.downloadUrl"`
	Created     string `json:"createdDateTime"`
	Modified    string `json:"lastModifiedDateTime"`
}

var contentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".zip":  "application/zip",
}

// Upload stores a file in the site document library under the given folder
// path. If the folder does not exist it is created first. With overwrite
// disabled, an existing file is left untouched and the new file gets a
// timestamp suffix instead.
func (c *Client) Upload(ctx context.Context, folder string, filename string, content []byte, overwrite bool) (*DriveItem, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return nil, err
	}

	if !overwrite {
		if exists, _ := c.fileExists(ctx, siteID, folder, filename); exists {
			extension := filepath.Ext(filename)
			base := strings.TrimSuffix(filename, extension)
			filename = fmt.Sprintf("%v_%v%v", base, time.Now().Format("20060102_150405"), extension)

			c.log.Info().Str("filename", filename).Msg("file exists, uploading under unique name")
		}
	}

	uploaded, status, err := c.put(ctx, uploadURL(siteID, folder, filename), filename, content)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound && folder != "" {
		c.log.Warn().Str("folder", folder).Msg("folder does not exist, creating it")

		if err := c.EnsureFolder(ctx, folder); err != nil {
			return nil, err
		}

		uploaded, status, err = c.put(ctx, uploadURL(siteID, folder, filename), filename, content)
		if err != nil {
			return nil, err
		}
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("uploading %v: graph returned status %v", filename, status)
	}

	c.log.Info().Str("filename", uploaded.Name).Str("url", uploaded.WebURL).Msg("file uploaded")

	return uploaded, nil
}

// EnsureFolder creates the folder path in the document library, walking the
// path one segment at a time and creating the segments that are missing.
func (c *Client) EnsureFolder(ctx context.Context, folder string) error {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return err
	}

	segments := []string{}
	for _, segment := range strings.Split(folder, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	current := ""
	for _, segment := range segments {
		if current == "" {
			current = segment
		} else {
			current = current + "/" + segment
		}

		if exists, err := c.folderExists(ctx, siteID, current); err != nil {
			return err
		} else if exists {
			continue
		}

		parent := ""
		if ix := strings.LastIndex(current, "/"); ix >= 0 {
			parent = current[:ix]
		}

		url := fmt.Sprintf("/sites/%v/drive/root/children", siteID)
		if parent != "" {
			url = fmt.Sprintf("/sites/%v/drive/root:/%v:/children", siteID, encodePath(parent))
		}

		response, err := c.rest.R().
			SetContext(ctx).
			SetBody(map[string]any{
				"name":                              segment,
				"folder":                            map[string]any{},
				"@microsoft.graph.conflictBehavior": "rename",
			}).
			Post(url)

		if err != nil {
			return fmt.Errorf("creating folder %q: %w", current, err)
		}

		if response.StatusCode() != http.StatusOK && response.StatusCode() != http.StatusCreated {
			return fmt.Errorf("creating folder %q: graph returned %s: %s", current, response.Status(), response.Body())
		}

		c.log.Info().Str("folder", current).Msg("folder created")
	}

	return nil
}

func (c *Client) put(ctx context.Context, url string, filename string, content []byte) (*DriveItem, int, error) {
	uploaded := DriveItem{}

	response, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType(filename)).
		SetBody(content).
		SetResult(&uploaded).
		Put(url)

	if err != nil {
		return nil, 0, fmt.Errorf("uploading %v: %w", filename, err)
	}

	return &uploaded, response.StatusCode(), nil
}

func (c *Client) fileExists(ctx context.Context, siteID string, folder string, filename string) (bool, error) {
	url := fmt.Sprintf("/sites/%v/drive/root/children/%v", siteID, encodePath(filename))
	if folder != "" {
		url = fmt.Sprintf("/sites/%v/drive/root:/%v/%v", siteID, encodePath(folder), encodePath(filename))
	}

	response, err := c.rest.R().SetContext(ctx).Get(url)
	if err != nil {
		return false, err
	}

	return response.StatusCode() == http.StatusOK, nil
}

func (c *Client) folderExists(ctx context.Context, siteID string, folder string) (bool, error) {
	response, err := c.rest.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/sites/%v/drive/root:/%v", siteID, encodePath(folder)))

	if err != nil {
		return false, err
	}

	return response.StatusCode() == http.StatusOK, nil
}

func uploadURL(siteID string, folder string, filename string) string {
	if folder != "" {
		return fmt.Sprintf("/sites/%v/drive/root:/%v/%v:/content", siteID, encodePath(folder), encodePath(filename))
	}

	return fmt.Sprintf("/sites/%v/drive/root/children/%v/content", siteID, encodePath(filename))
}

func encodePath(path string) string {
	return strings.ReplaceAll(path, " ", "%20")
}

func contentType(filename string) string {
	if t, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}

	return "application/octet-stream"
}
