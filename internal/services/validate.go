package services

import "github.com/go-playground/validator/v10"

// validator 实例缓存结构体元信息，并发安全
var validate = validator.New()
