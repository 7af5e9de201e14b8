package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// driveClient wraps the Drive API behind the three calls the importer
// needs: resolve a folder path, list its files and download one.
type driveClient struct {
	srv *drive.Service
}

func newDriveClient(ctx context.Context, credentialsJSON string) (*driveClient, error) {
	config, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		drive.DriveReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
	}

	client := config.Client(ctx)
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to build drive client: %w", err)
	}

	return &driveClient{srv: srv}, nil
}

type driveFile struct {
	ID           string
	Name         string
	MimeType     string
	ModifiedTime string
}

func (c *driveClient) listFiles(folderID string) ([]driveFile, error) {
	if folderID == "" {
		folderID = "root"
	}

	result, err := c.srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Fields("files(id, name, mimeType, modifiedTime)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list drive files: %w", err)
	}

	files := make([]driveFile, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, driveFile{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
		})
	}
	return files, nil
}

func (c *driveClient) download(fileID string, w io.Writer) error {
	resp, err := c.srv.Files.Get(fileID).Download()
	if err != nil {
		return fmt.Errorf("unable to download file: %w", err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}

// findFolderByPath walks a "Parent/Child" path from the Drive root and
// returns the deepest folder's id.
func (c *driveClient) findFolderByPath(path string) (string, error) {
	if path == "" {
		return "root", nil
	}

	currentID := "root"
	for _, folder := range strings.Split(path, "/") {
		if folder == "" {
			continue
		}

		result, err := c.srv.Files.List().
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false",
				currentID, folder)).
			Fields("files(id, name)").
			Do()
		if err != nil {
			return "", fmt.Errorf("error finding folder %s: %w", folder, err)
		}
		if len(result.Files) == 0 {
			return "", fmt.Errorf("folder not found: %s", folder)
		}

		currentID = result.Files[0].Id
	}

	return currentID, nil
}
