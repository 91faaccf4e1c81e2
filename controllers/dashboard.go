package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onixlab/onix-crm/service"
	"github.com/onixlab/onix-crm/utils"
)

// DashboardController 数据看板接口与页面
type DashboardController struct {
	Service *service.CustomerService
}

// NewDashboardController 创建DashboardController
func NewDashboardController(svc *service.CustomerService) *DashboardController {
	return &DashboardController{Service: svc}
}

// GetDashboardStats 获取数据看板统计信息
func (ctl *DashboardController) GetDashboardStats(c *gin.Context) {
	stats, err := ctl.Service.GetDashboardStats(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HomePage 渲染看板首页，数据通过API异步加载
func (ctl *DashboardController) HomePage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Onix CRM</title>
    <style>
        body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 0; background-color: #f6f7f9; color: #2e2e2e; }
        .header { background-color: #2e51bb; color: white; padding: 12px 24px; }
        .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
        .stats { display: flex; gap: 16px; margin-bottom: 20px; }
        .stat-card { background: white; border: 1px solid #d9d9d9; border-radius: 4px; padding: 16px; flex: 1; text-align: center; }
        .stat-value { font-size: 28px; font-weight: 600; color: #1e3c8c; }
        .customer-list { display: grid; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); gap: 16px; }
        .card { background: white; border: 1px solid #d9d9d9; border-radius: 4px; padding: 16px; }
        .customer-name { font-weight: 600; color: #2e51bb; }
        .customer-email { color: #4a4a4a; font-size: 14px; }
        .status { display: inline-block; padding: 3px 8px; border-radius: 12px; font-size: 12px; font-weight: 600; text-transform: uppercase; color: white; }
        .status-customer { background-color: #6eb056; }
        .status-prospect { background-color: #f2af43; }
        .status-lead { background-color: #3a7cda; }
    </style>
</head>
<body>
    <div class="header"><h2>Onix CRM</h2></div>
    <div class="container">
        <div class="stats" id="stats"></div>
        <div class="customer-list" id="customers"></div>
    </div>
    <script>
        fetch('/api/dashboard/stats')
            .then(r => r.json())
            .then(s => {
                document.getElementById('stats').innerHTML =
                    '<div class="stat-card"><div class="stat-value">' + s.total_customers + '</div>Customers</div>' +
                    '<div class="stat-card"><div class="stat-value">' + s.total_interactions + '</div>Interactions</div>' +
                    '<div class="stat-card"><div class="stat-value">' + (s.status_counts.lead || 0) + '</div>Leads</div>';
            });
        fetch('/api/customers')
            .then(r => r.json())
            .then(customers => {
                document.getElementById('customers').innerHTML = customers.map(c =>
                    '<div class="card">' +
                    '<div class="customer-name">' + c.first_name + ' ' + c.last_name + '</div>' +
                    '<div class="customer-email">' + c.email + '</div>' +
                    '<div>' + (c.company || '') + '</div>' +
                    '<span class="status status-' + c.status + '">' + c.status + '</span>' +
                    '</div>').join('');
            });
    </script>
</body>
</html>
`
