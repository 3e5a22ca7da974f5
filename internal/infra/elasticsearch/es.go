package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clipstream/internal/config"
	"clipstream/internal/model"
	"clipstream/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// videoDoc 索引中的视频文档
type videoDoc struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

const videoMapping = `{
	"mappings": {
		"properties": {
			"id":          {"type": "long"},
			"owner_id":    {"type": "long"},
			"owner_name":  {"type": "keyword"},
			"title":       {"type": "text"},
			"description": {"type": "text"},
			"created_at":  {"type": "date"}
		}
	}
}`

// VideoIndex 已发布视频的全文索引
type VideoIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewVideoIndex 创建 ES 客户端并验证连通性
func NewVideoIndex(cfg *config.ElasticsearchConfig) (*VideoIndex, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h != "" && !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	index := cfg.VideoIndex
	if index == "" {
		index = "videos"
	}

	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts), zap.String("index", index))
	return &VideoIndex{client: es, index: index}, nil
}

// EnsureIndex 索引不存在时按映射创建
func (v *VideoIndex) EnsureIndex(ctx context.Context) error {
	resp, err := v.client.Indices.Exists([]string{v.index},
		v.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	if resp.StatusCode == 200 {
		return nil
	}

	createResp, err := v.client.Indices.Create(v.index,
		v.client.Indices.Create.WithContext(ctx),
		v.client.Indices.Create.WithBody(strings.NewReader(videoMapping)),
	)
	if err != nil {
		return err
	}
	defer createResp.Body.Close()
	if createResp.IsError() {
		return fmt.Errorf("create index %s: %s", v.index, createResp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", v.index))
	return nil
}

// SyncVideo 将已发布视频写入索引（发布时调用）
func (v *VideoIndex) SyncVideo(ctx context.Context, video *model.Video, ownerName string) error {
	doc := videoDoc{
		ID:          video.ID,
		OwnerID:     video.OwnerID,
		OwnerName:   ownerName,
		Title:       video.Title,
		Description: video.Description,
		CreatedAt:   video.CreatedAt,
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := v.client.Index(v.index, bytes.NewReader(payload),
		v.client.Index.WithContext(ctx),
		v.client.Index.WithDocumentID(strconv.FormatInt(video.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("index video %d: %s", video.ID, resp.String())
	}
	return nil
}

// RemoveVideo 从索引移除视频（取消发布或删除时调用）
func (v *VideoIndex) RemoveVideo(ctx context.Context, videoID int64) error {
	resp, err := v.client.Delete(v.index, strconv.FormatInt(videoID, 10),
		v.client.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// 文档不在索引里不算失败
	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete video %d from index: %s", videoID, resp.String())
	}
	return nil
}

// Search 标题/描述全文检索，返回视频 ID 列表与命中总数
func (v *VideoIndex) Search(ctx context.Context, query string, skip, limit int) ([]int64, int64, error) {
	body := map[string]interface{}{
		"from": skip,
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^2", "description"},
			},
		},
		"sort": []map[string]interface{}{
			{"_score": map[string]string{"order": "desc"}},
			{"created_at": map[string]string{"order": "desc"}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}

	resp, err := v.client.Search(
		v.client.Search.WithContext(ctx),
		v.client.Search.WithIndex(v.index),
		v.client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, 0, fmt.Errorf("search videos: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source videoDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, esResp.Hits.Total.Value, nil
}
