package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"os"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/gcp"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

// PortraitService manages professional headshots. Uploaded photos are
// center-cropped and resized; professionals without a photo get a generated
// initials placeholder so the team page never shows a broken image.
type PortraitService interface {
	UploadPortrait(ctx context.Context, tx *gorm.DB, pro *types.Professional, raw []byte) error
	EnsurePortrait(ctx context.Context, tx *gorm.DB, pro *types.Professional) error
	GeneratePlaceholder(pro *types.Professional) (bytes.Buffer, error)
	RemovePortrait(ctx context.Context, tx *gorm.DB, pro *types.Professional) error
}

// Placeholder backgrounds. The color is picked by hashing the full name so a
// professional keeps the same color across regenerations.
var portraitPalette = []color.NRGBA{
	{R: 0x2F, G: 0x6F, B: 0x8F, A: 0xFF},
	{R: 0x3A, G: 0x7D, B: 0x5C, A: 0xFF},
	{R: 0x8A, G: 0x5A, B: 0x83, A: 0xFF},
	{R: 0xB0, G: 0x6A, B: 0x3C, A: 0xFF},
	{R: 0x5C, G: 0x62, B: 0xA8, A: 0xFF},
	{R: 0x4F, G: 0x83, B: 0x8C, A: 0xFF},
}

type portraitService struct {
	db               *gorm.DB
	log              *logger.Logger
	professionalRepo repos.ProfessionalRepo
	bucketService    gcp.BucketService
	fontFace         font.Face
}

func NewPortraitService(db *gorm.DB, log *logger.Logger, professionalRepo repos.ProfessionalRepo, bucketService gcp.BucketService) (PortraitService, error) {
	serviceLog := log.With("service", "PortraitService")

	fontPath := strings.TrimSpace(os.Getenv("PORTRAIT_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("Env var PORTRAIT_FONT is empty")
	}
	serviceLog.Info("Loading portrait font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load portrait font: %w", err)
	}

	return &portraitService{
		db:               db,
		log:              serviceLog,
		professionalRepo: professionalRepo,
		bucketService:    bucketService,
		fontFace:         face,
	}, nil
}

func (ps *portraitService) UploadPortrait(ctx context.Context, tx *gorm.DB, pro *types.Professional, raw []byte) error {
	if pro == nil || pro.ID == uuid.Nil {
		return fmt.Errorf("professional required")
	}

	processed, err := processUploadedPortrait(raw, 512)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(pro.PhotoBucketKey)

	// Versioned key so CDN and browser caches never serve a stale portrait.
	newKey := fmt.Sprintf("portraits/%s/%d.png", pro.ID.String(), time.Now().UnixNano())

	if err := ps.bucketService.UploadFile(ctx, gcp.BucketCategoryPortrait, newKey, bytes.NewReader(processed.Bytes())); err != nil {
		return fmt.Errorf("failed to upload portrait: %w", err)
	}

	pro.PhotoBucketKey = newKey
	pro.PhotoURL = ps.bucketService.GetPublicURL(gcp.BucketCategoryPortrait, newKey)

	if err := ps.professionalRepo.UpdatePhotoFields(ctx, tx, pro.ID, newKey, pro.PhotoURL); err != nil {
		return err
	}

	// Best-effort delete of the old object after the new one is live.
	if oldKey != "" && oldKey != newKey {
		if err := ps.bucketService.DeleteFile(ctx, gcp.BucketCategoryPortrait, oldKey); err != nil {
			ps.log.Warn("failed to delete old portrait (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

// EnsurePortrait generates and uploads an initials placeholder when the
// professional has no photo. A real uploaded photo is left untouched.
func (ps *portraitService) EnsurePortrait(ctx context.Context, tx *gorm.DB, pro *types.Professional) error {
	if pro == nil || pro.ID == uuid.Nil {
		return fmt.Errorf("professional required")
	}
	if strings.TrimSpace(pro.PhotoBucketKey) != "" {
		return nil
	}

	buf, err := ps.GeneratePlaceholder(pro)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("portraits/%s/%d.png", pro.ID.String(), time.Now().UnixNano())
	if err := ps.bucketService.UploadFile(ctx, gcp.BucketCategoryPortrait, key, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload placeholder portrait: %w", err)
	}

	pro.PhotoBucketKey = key
	pro.PhotoURL = ps.bucketService.GetPublicURL(gcp.BucketCategoryPortrait, key)
	return ps.professionalRepo.UpdatePhotoFields(ctx, tx, pro.ID, key, pro.PhotoURL)
}

func (ps *portraitService) GeneratePlaceholder(pro *types.Professional) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := colorForName(pro.FullName)
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(pro.FullName)

	dc.SetFontFace(ps.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func (ps *portraitService) RemovePortrait(ctx context.Context, tx *gorm.DB, pro *types.Professional) error {
	if pro == nil || pro.ID == uuid.Nil {
		return fmt.Errorf("professional required")
	}
	oldKey := strings.TrimSpace(pro.PhotoBucketKey)
	if oldKey == "" {
		return nil
	}
	if err := ps.professionalRepo.UpdatePhotoFields(ctx, tx, pro.ID, "", ""); err != nil {
		return err
	}
	pro.PhotoBucketKey = ""
	pro.PhotoURL = ""
	if err := ps.bucketService.DeleteFile(ctx, gcp.BucketCategoryPortrait, oldKey); err != nil {
		ps.log.Warn("failed to delete portrait object (ignored)", "oldKey", oldKey, "error", err)
	}
	return nil
}

func processUploadedPortrait(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square.
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

func colorForName(name string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.TrimSpace(strings.ToLower(name))))
	return portraitPalette[int(h.Sum32())%len(portraitPalette)]
}

func computeInitials(fullName string) string {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "?"
	}
	first := strings.ToUpper(parts[0][:1])
	if len(parts) == 1 {
		return first
	}
	last := strings.ToUpper(parts[len(parts)-1][:1])
	return first + last
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
