package database

import (
	"encoding/json"
	"fmt"

	"github.com/evandrarf/microlearn-be/internal/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LearningModuleSeed struct {
	ID         string
	Title      string
	Content    string
	Subject    string
	Difficulty string
	Minutes    int
}

// LearningModuleData - Modules shown on the dashboard, searched by POST /search
var LearningModuleData = []LearningModuleSeed{
	{ID: "ml-101", Title: "Introduction to Machine Learning", Subject: "machine_learning", Difficulty: "easy", Minutes: 15,
		Content: "Machine learning lets computers learn patterns from data instead of following hand-written rules. Covers supervised and unsupervised learning, training and test sets, and overfitting."},
	{ID: "ml-102", Title: "Linear Regression", Subject: "machine_learning", Difficulty: "medium", Minutes: 20,
		Content: "Linear regression fits a straight line through data points to predict a continuous value. Covers the least squares loss, gradient descent and evaluating a model with mean squared error."},
	{ID: "ml-201", Title: "Neural Networks Basics", Subject: "deep_learning", Difficulty: "medium", Minutes: 25,
		Content: "A neural network stacks layers of weighted sums and activation functions. Covers neurons, backpropagation, learning rate and why deeper networks can model more complex functions."},
	{ID: "ml-301", Title: "Transformers and Attention", Subject: "deep_learning", Difficulty: "hard", Minutes: 30,
		Content: "Transformers process sequences with self-attention, letting every token look at every other token. Covers queries, keys and values, positional encoding and text embeddings."},
	{ID: "ds-101", Title: "Arrays and Linked Lists", Subject: "data_structures", Difficulty: "easy", Minutes: 15,
		Content: "Arrays store items next to each other in memory for fast indexing, linked lists chain nodes with pointers for cheap insertion. Covers access time, insertion cost and memory layout."},
	{ID: "ds-201", Title: "Hash Tables", Subject: "data_structures", Difficulty: "medium", Minutes: 20,
		Content: "Hash tables map keys to buckets with a hash function for near constant time lookup. Covers collisions, chaining, open addressing and load factor."},
	{ID: "algo-201", Title: "Sorting Algorithms", Subject: "algorithms", Difficulty: "medium", Minutes: 25,
		Content: "Sorting puts items in order. Covers bubble sort, merge sort and quicksort, their time complexity, and what makes a sort stable."},
	{ID: "math-101", Title: "Vectors and Cosine Similarity", Subject: "mathematics", Difficulty: "easy", Minutes: 10,
		Content: "A vector is a list of numbers with a direction and a length. The cosine of the angle between two vectors measures how similar they are, from -1 for opposite to 1 for identical direction."},
	{ID: "math-201", Title: "Probability Fundamentals", Subject: "mathematics", Difficulty: "medium", Minutes: 20,
		Content: "Probability measures how likely an event is. Covers sample spaces, conditional probability, Bayes' theorem and expected value."},
	{ID: "study-101", Title: "Spaced Repetition", Subject: "study_skills", Difficulty: "easy", Minutes: 10,
		Content: "Reviewing material at growing intervals moves it into long-term memory. Covers the forgetting curve, short daily sessions and why regular breaks improve retention."},
}

// SeedLearningModules - Insert LearningModuleData once, skipped when documents already exist
func SeedLearningModules(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.LearningDocument{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count learning documents: %w", err)
	}
	if count > 0 {
		log.Info("Learning modules already seeded, skipping...")
		return nil
	}

	docs := make([]entity.LearningDocument, 0, len(LearningModuleData))
	for _, m := range LearningModuleData {
		meta, err := json.Marshal(map[string]any{
			"subject":    m.Subject,
			"difficulty": m.Difficulty,
			"minutes":    m.Minutes,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for %s: %w", m.ID, err)
		}
		docs = append(docs, entity.LearningDocument{
			DocumentID: m.ID,
			Title:      m.Title,
			Content:    m.Content,
			Metadata:   string(meta),
		})
	}

	if err := db.Create(&docs).Error; err != nil {
		return fmt.Errorf("failed to seed learning modules: %w", err)
	}

	log.Infof("Successfully seeded %d learning modules", len(docs))
	return nil
}
