// controllers/song_controller.go
package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soundcrate/soundcrate_backend/config"
	"github.com/soundcrate/soundcrate_backend/middleware"
	"github.com/soundcrate/soundcrate_backend/models"
	"github.com/soundcrate/soundcrate_backend/websocket"
)

const leaderboardCacheTTL = 30 * time.Second

// SongController handles song uploads, the vote leaderboard and votes
type SongController struct {
	DB    *mongo.Client
	redis *redis.Client
	hub   *websocket.Hub
}

// NewSongController creates a new song controller
func NewSongController(db *mongo.Client, redisClient *redis.Client, hub *websocket.Hub) *SongController {
	return &SongController{DB: db, redis: redisClient, hub: hub}
}

// Upload stores the cover image and trimmed audio file and returns their
// public URLs. The cover is downscaled before saving.
func (sc *SongController) Upload(c echo.Context) error {
	coverFile, err := c.FormFile("cover")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Cover image is required",
		})
	}

	audioFile, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Audio file is required",
		})
	}

	coverURL, err := saveCoverImage(coverFile)
	if err != nil {
		c.Logger().Errorf("cover upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save cover image",
		})
	}

	audioURL, err := saveAudioFile(audioFile)
	if err != nil {
		c.Logger().Errorf("audio upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save audio file",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Files uploaded",
		Data: map[string]string{
			"coverUrl": coverURL,
			"audioUrl": audioURL,
		},
	})
}

// Create saves the song metadata once the files are uploaded
func (sc *SongController) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.CreateSongRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Artist, title, cover and audio are required",
		})
	}

	song := models.Song{
		Artist:    req.Artist,
		Title:     req.Title,
		CoverURL:  req.CoverURL,
		AudioURL:  req.AudioURL,
		TrimStart: req.TrimStart,
		TrimEnd:   req.TrimEnd,
		Duration:  req.Duration,
		Votes:     0,
		UserID:    middleware.GetUserID(c),
		CreatedAt: time.Now(),
	}

	collection := config.GetCollection(sc.DB, "songs")
	result, err := collection.InsertOne(ctx, song)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save song",
		})
	}
	song.ID = result.InsertedID.(primitive.ObjectID)

	sc.hub.NotifyNewSong(song)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Song created",
		Data:    song,
	})
}

// Leaderboard returns the top songs by votes, cached briefly in Redis
func (sc *SongController) Leaderboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	limit := int64(20)
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := parsePositiveInt(l, 100); err == nil {
			limit = parsed
		}
	}

	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if sc.redis != nil {
		if cached, err := sc.redis.Get(ctx, cacheKey).Result(); err == nil {
			var songs []models.Song
			if json.Unmarshal([]byte(cached), &songs) == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Leaderboard",
					Data:    songs,
				})
			}
		}
	}

	collection := config.GetCollection(sc.DB, "songs")
	findOptions := options.Find().
		SetSort(bson.D{{Key: "votes", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load leaderboard",
		})
	}
	defer cursor.Close(ctx)

	songs := []models.Song{}
	if err := cursor.All(ctx, &songs); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load leaderboard",
		})
	}

	if sc.redis != nil {
		if encoded, err := json.Marshal(songs); err == nil {
			sc.redis.Set(ctx, cacheKey, encoded, leaderboardCacheTTL)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Leaderboard",
		Data:    songs,
	})
}

// Vote increments a song's vote count and pushes the new total to listeners
func (sc *SongController) Vote(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	songID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid song ID",
		})
	}

	collection := config.GetCollection(sc.DB, "songs")

	var song models.Song
	err = collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": songID},
		bson.M{"$inc": bson.M{"votes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&song)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Song not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to register vote",
		})
	}

	sc.hub.NotifyVote(song.ID.Hex(), song.Votes)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vote registered",
		Data:    song,
	})
}

// ShareQRCode renders a QR code pointing at the song's public page
func (sc *SongController) ShareQRCode(c echo.Context) error {
	songID := c.Param("id")
	if songID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Song ID is required",
		})
	}

	baseURL := os.Getenv("SHARE_URL_BASE")
	if baseURL == "" {
		baseURL = "https://soundcrate.app/songs/"
	}
	content := baseURL + songID

	// Generate QR code
	qrCode, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code: " + err.Error(),
		})
	}

	// Scale the QR code to a reasonable size
	qrCode, err = barcode.Scale(qrCode, 200, 200)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code: " + err.Error(),
		})
	}

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code as PNG: " + err.Error(),
		})
	}

	c.Response().Header().Set("Content-Disposition", "inline; filename=song-"+songID+".png")
	return c.Blob(http.StatusOK, "image/png", buffer.Bytes())
}

// saveCoverImage downscales and stores a cover image, returning its URL path
func saveCoverImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode cover image: %v", err)
	}

	// Resize to max width of 320px while maintaining aspect ratio
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode cover image: %v", err)
	}

	uploadDir := filepath.Join("uploads", "covers")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ".jpg"
	if err := os.WriteFile(filepath.Join(uploadDir, filename), buf.Bytes(), 0644); err != nil {
		return "", err
	}

	return "/uploads/covers/" + filename, nil
}

// saveAudioFile stores the already-trimmed audio file, returning its URL path
func saveAudioFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	uploadDir := filepath.Join("uploads", "audio")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".mp3"
	}
	filename := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/audio/" + filename, nil
}

// parsePositiveInt parses a positive integer capped at max
func parsePositiveInt(s string, max int64) (int64, error) {
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be positive")
	}
	if n > max {
		n = max
	}
	return n, nil
}
