package api

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/erazemk/spoolshelf/internal/model"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestExportAndImport(t *testing.T) {
	server, lines := newTestServer(t)
	token := login(t, server, lines, "admin", model.RoleAdmin)

	table := "id,category,material,color,brand,status,count,notes\n" +
		"4,filament,PETG,black,Prusament,unopened,2,\n" +
		"7,resin,basic,grey,,opened,1,\"keep dark, shake\"\n"

	req, _ := http.NewRequest("POST", server.URL+"/api/lines/import", strings.NewReader(table))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/csv")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on import, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", server.URL+"/api/lines/export", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on export, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected CSV content type, got %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != table {
		t.Errorf("export differs from import:\n%s", body)
	}

	// Fresh ids continue after the highest imported id.
	resp = do(t, "POST", server.URL+"/api/lines/7/consume", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 consuming imported line, got %d", resp.StatusCode)
	}
	resp = do(t, "POST", server.URL+"/api/lines/4/open", token, nil)
	if got := decodeResult(t, resp).Outcome.Created; got != 5 {
		t.Errorf("expected new opened line id 5, got %d", got)
	}
}

func TestImportRejectsMalformedCount(t *testing.T) {
	server, lines := newTestServer(t)
	token := login(t, server, lines, "admin", model.RoleAdmin)

	lines.Save(context.Background(), []model.Line{
		{ID: 1, Category: model.CategoryFilament, Material: "PLA", Color: "red", Status: model.StatusUnopened, Count: 3},
	})

	table := "id,category,material,color,brand,status,count,notes\n1,filament,PLA,red,,unopened,,\n"
	req, _ := http.NewRequest("POST", server.URL+"/api/lines/import", strings.NewReader(table))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	got, _ := lines.Load(context.Background())
	if len(got) != 1 || got[0].Count != 3 {
		t.Errorf("rejected import changed the table: %+v", got)
	}
}

func TestImportRequiresAdmin(t *testing.T) {
	server, lines := newTestServer(t)
	token := login(t, server, lines, "manager", model.RoleManager)

	req, _ := http.NewRequest("POST", server.URL+"/api/lines/import", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSwatchSharedAcrossStatuses(t *testing.T) {
	server, lines := newTestServer(t)
	token := login(t, server, lines, "manager", model.RoleManager)

	lines.Save(context.Background(), []model.Line{
		{ID: 1, Category: model.CategoryFilament, Material: "PLA", Color: "red", Status: model.StatusUnopened, Count: 3},
		{ID: 2, Category: model.CategoryFilament, Material: "PLA", Color: "red", Status: model.StatusOpened, Count: 1},
	})

	resp := do(t, "GET", server.URL+"/api/lines/1/swatch", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before upload, got %d", resp.StatusCode)
	}

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{200, 0, 0, 255})
		}
	}
	var pngData bytes.Buffer
	png.Encode(&pngData, img)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, _ := mw.CreateFormFile("image", "red.png")
	part.Write(pngData.Bytes())
	mw.Close()

	req, _ := http.NewRequest("PUT", server.URL+"/api/lines/1/swatch", &form)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on upload, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", server.URL+"/api/lines/2/swatch", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected opened line to share the swatch, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", ct)
	}
}
