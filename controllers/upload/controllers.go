package uploadcontroller

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"GEUNTAE/analysis"
	"GEUNTAE/excel"
	"GEUNTAE/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	DB       *gorm.DB
	Analyzer *analysis.Analyzer
	// UploadDir receives a copy of each accepted file under a uuid name.
	UploadDir string
}

func NewHandler(db *gorm.DB, analyzer *analysis.Analyzer) *Handler {
	return &Handler{DB: db, Analyzer: analyzer, UploadDir: "uploads"}
}

var allowedExts = map[string]bool{".xlsx": true, ".xls": true, ".csv": true}

// Upload ingests one spreadsheet: parse, normalize, analyze, then persist
// the upload row and its records in a single transaction.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "파일이 업로드되지 않았습니다."})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "지원하지 않는 파일 형식입니다. (.xlsx, .xls, .csv만 가능)"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "파일 크기는 10MB를 초과할 수 없습니다."})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records, dropped, err := excel.Parse(data, file.Filename)
	if err != nil {
		status := http.StatusInternalServerError
		var missing *excel.MissingColumnError
		if errors.As(err, &missing) || errors.Is(err, excel.ErrEmptyDataset) || errors.Is(err, excel.ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if dropped > 0 {
		log.Printf("upload %s: dropped %d rows without date or name", file.Filename, dropped)
	}
	if len(records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효한 근태 데이터가 없습니다."})
		return
	}

	result := h.Analyzer.Analyze(c.Request.Context(), records)
	blob, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	uploadID := uuid.NewString()
	storedName := uploadID + ext
	if err := os.MkdirAll(h.UploadDir, 0o755); err == nil {
		if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, storedName)); err != nil {
			log.Printf("upload %s: keeping original file failed: %v", file.Filename, err)
		}
	}

	upload := models.Upload{
		Id:               uploadID,
		Filename:         storedName,
		OriginalFilename: file.Filename,
		RecordCount:      len(records),
		Analysis:         blob,
	}
	for i := range records {
		records[i].UploadId = uploadID
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&upload).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(&records, 200).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadId":    uploadID,
		"filename":    file.Filename,
		"recordCount": len(records),
		"analysis":    result,
	})
}

func (h *Handler) List(c *gin.Context) {
	var uploads []models.Upload
	if err := h.DB.Order("uploaded_at desc").Find(&uploads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, uploads)
}

// Delete removes an upload and every record it owns.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("upload_id = ?", id).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Upload{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
