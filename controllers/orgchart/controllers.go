package orgchartcontroller

import (
	"net/http"
	"strconv"

	"GEUNTAE/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// List returns the flat node list; the frontend assembles the tree.
func (h *Handler) List(c *gin.Context) {
	var nodes []models.OrgChartNode
	if err := h.DB.Order("sort_order ASC, id ASC").Find(&nodes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nodes)
}

type nodeRequest struct {
	ParentId       *int64 `json:"parent_id"`
	NodeType       string `json:"node_type"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	EmploymentType string `json:"employment_type"`
	Phone          string `json:"phone"`
	Memo           string `json:"memo"`
	SortOrder      int    `json:"sort_order"`
}

func (req *nodeRequest) toModel() models.OrgChartNode {
	nodeType := req.NodeType
	if nodeType == "" {
		nodeType = "person"
	}
	return models.OrgChartNode{
		ParentId:       req.ParentId,
		NodeType:       nodeType,
		Name:           req.Name,
		Position:       req.Position,
		Department:     req.Department,
		EmploymentType: req.EmploymentType,
		Phone:          req.Phone,
		Memo:           req.Memo,
		SortOrder:      req.SortOrder,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req nodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "이름은 필수입니다."})
		return
	}

	node := req.toModel()
	if err := h.DB.Create(&node).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, node)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 ID입니다."})
		return
	}

	var req nodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node := req.toModel()
	node.Id = id
	err = h.DB.Model(&models.OrgChartNode{}).Where("id = ?", id).
		Select("parent_id", "node_type", "name", "position", "department",
			"employment_type", "phone", "memo", "sort_order").
		Updates(&node).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var updated models.OrgChartNode
	if err := h.DB.First(&updated, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "노드를 찾을 수 없습니다."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a node and its whole subtree.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 ID입니다."})
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return deleteSubtree(tx, id)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func deleteSubtree(tx *gorm.DB, id int64) error {
	var children []models.OrgChartNode
	if err := tx.Where("parent_id = ?", id).Find(&children).Error; err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteSubtree(tx, child.Id); err != nil {
			return err
		}
	}
	return tx.Delete(&models.OrgChartNode{}, id).Error
}
