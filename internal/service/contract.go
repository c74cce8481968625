package service

import (
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"k8s.io/klog/v2"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/pkg/storage"
	"github.com/brokerdesk/backend/internal/repository"
)

var (
	ErrContractNotFound      = errors.New("contract not found")
	ErrFileNameRequired      = errors.New("contract file name is required")
	ErrInvalidContractStatus = errors.New("unknown contract status")
)

// ContractService 合同档案。文件内容走对象存储，元数据走数据库。
type ContractService struct {
	contractRepo repository.ContractRepository
	customerRepo repository.CustomerRepository
	store        storage.Storage
	now          func() time.Time
}

func NewContractService(contractRepo repository.ContractRepository, customerRepo repository.CustomerRepository, store storage.Storage) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		customerRepo: customerRepo,
		store:        store,
		now:          time.Now,
	}
}

func (s *ContractService) List(tenantID string) ([]model.Contract, error) {
	return s.contractRepo.List(tenantID)
}

func (s *ContractService) ListByCustomer(customerID string) ([]model.Contract, error) {
	return s.contractRepo.ListByCustomer(customerID)
}

func (s *ContractService) Get(id string) (*model.Contract, error) {
	contract, err := s.contractRepo.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrContractNotFound
	}
	return contract, err
}

// Upload 先落盘再写库。customerID 为空时进入公共合同库（library 目录）。
func (s *ContractService) Upload(tenantID, customerID, fileName string, r io.Reader) (*model.Contract, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	if fileName == "" {
		return nil, ErrFileNameRequired
	}
	var owner *string
	dir := "library"
	if customerID != "" {
		if _, err := s.customerRepo.Get(customerID); errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		} else if err != nil {
			return nil, err
		}
		owner = &customerID
		dir = customerID
	}

	filePath := path.Join("contracts", dir, fmt.Sprintf("%d_%s", s.now().UnixMilli(), path.Base(fileName)))
	if err := s.store.Save(filePath, r); err != nil {
		return nil, fmt.Errorf("save contract file: %w", err)
	}

	contract := &model.Contract{
		CustomerID:   owner,
		TenantID:     tenantID,
		ContractName: fileName,
		FilePath:     filePath,
		Status:       model.ContractStatusPending,
	}
	if err := s.contractRepo.Create(contract); err != nil {
		// 文件已落盘但元数据写入失败，回收文件避免孤儿对象
		if cleanupErr := s.store.Delete(filePath); cleanupErr != nil {
			klog.Errorf("合同元数据写入失败后回收文件失败 path=%s: %v", filePath, cleanupErr)
		}
		return nil, err
	}
	return contract, nil
}

// Download 返回文件流，调用方负责 Close
func (s *ContractService) Download(id string) (*model.Contract, io.ReadCloser, error) {
	contract, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(contract.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return contract, rc, nil
}

// LinkCustomer 把公共库合同挂到客户名下
func (s *ContractService) LinkCustomer(contractID, customerID string) error {
	if _, err := s.Get(contractID); err != nil {
		return err
	}
	if _, err := s.customerRepo.Get(customerID); errors.Is(err, repository.ErrNotFound) {
		return ErrCustomerNotFound
	} else if err != nil {
		return err
	}
	return s.contractRepo.LinkCustomer(contractID, customerID)
}

func (s *ContractService) UpdateStatus(id, status string) error {
	switch status {
	case model.ContractStatusPending, model.ContractStatusProcessed, model.ContractStatusFailed:
	default:
		return ErrInvalidContractStatus
	}
	err := s.contractRepo.UpdateStatus(id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrContractNotFound
	}
	return err
}

// Delete 先删存储再删库。文件已删而库删失败时把记录标记为 failed，
// 避免留下指向不存在文件的正常记录。
func (s *ContractService) Delete(id string) error {
	contract, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(contract.FilePath); err != nil {
		return fmt.Errorf("delete contract file: %w", err)
	}
	if err := s.contractRepo.Delete(id); err != nil {
		klog.Errorf("合同文件已删除但记录删除失败 id=%s: %v", id, err)
		if markErr := s.contractRepo.UpdateStatus(id, model.ContractStatusFailed); markErr != nil {
			klog.Errorf("合同记录标记 failed 失败 id=%s: %v", id, markErr)
		}
		return err
	}
	return nil
}
